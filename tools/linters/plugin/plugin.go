package main

import (
	"golang.org/x/tools/go/analysis"

	"courtlistener.app/cl/tools/linters/enumvalidator"
)

type AnalyzerPlugin struct{}

func (*AnalyzerPlugin) GetAnalyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		enumvalidator.Analyzer,
	}
}

func New(conf any) ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{enumvalidator.Analyzer}, nil
}

// main is required for the package to link under a plain `go build`; the
// package is intended to be built with -buildmode=plugin.
func main() {}
