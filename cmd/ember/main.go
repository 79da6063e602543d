// Ember is a small expression language with first-class functions and
// closures. The ember command runs scripts, checks them, serves them over
// the language server protocol, or evaluates them line by line in a REPL.
package main

import (
	"os"

	"src.ember.sh/pkg/buildinfo"
	"src.ember.sh/pkg/lsp"
	"src.ember.sh/pkg/prog"
	"src.ember.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program, shell.Program{})))
}
