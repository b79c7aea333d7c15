package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// enumTypes are the string enums whose values must come from their declared constants.
var enumTypes = map[string]bool{
	"AlertFrequency":  true,
	"TaskType":        true,
	"ConfirmStatus":   true,
	"SettingsOutcome": true,
	"FieldKind":       true,
}

var Analyzer = &analysis.Analyzer{
	Name: "enumvalidator",
	Doc:  "checks that enum values only use defined constants, not string literals",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		// tests feed invalid enum values on purpose
		if strings.HasSuffix(pass.Fset.File(file.Pos()).Name(), "_test.go") {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.GenDecl:
				// const blocks are where the allowed values are declared
				return node.Tok != token.CONST
			case *ast.BasicLit:
				// "" is the zero value, used to test for unset fields
				if node.Kind != token.STRING || node.Value == `""` {
					return true
				}
				if name, ok := enumName(pass, node); ok {
					pass.Reportf(node.Pos(),
						"string literal %s used as %s; use defined constant instead",
						node.Value, name)
				}
			}
			return true
		})
	}
	return nil, nil
}

// enumName reports the enum type an untyped string literal was converted to.
func enumName(pass *analysis.Pass, lit *ast.BasicLit) (string, bool) {
	t := pass.TypesInfo.TypeOf(lit)
	if t == nil {
		return "", false
	}
	named, ok := t.(*types.Named)
	if !ok {
		return "", false
	}
	name := named.Obj().Name()
	return name, enumTypes[name]
}
