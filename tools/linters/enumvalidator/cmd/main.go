package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"courtlistener.app/cl/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
