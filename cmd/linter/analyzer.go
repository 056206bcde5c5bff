// Command linter checks the poller sources for ways of ending the process or
// reaching a logger that bypass the explicitly constructed one:
//  1. calls of the built-in panic
//  2. log.Fatal, log.Fatalf, log.Fatalln and os.Exit outside func main of a main package
//  3. zap.L, zap.S and zap.ReplaceGlobals anywhere
package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/singlechecker"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports process exits and global loggers.
var Analyzer = &analysis.Analyzer{
	Name: "explicitlog",
	Doc:  "reports panic, log.Fatal/os.Exit outside main and use of the zap global logger",
	Run:  run,
	Requires: []*analysis.Analyzer{
		inspect.Analyzer,
	},
}

var exitCalls = map[string]bool{
	"log.Fatal":   true,
	"log.Fatalf":  true,
	"log.Fatalln": true,
	"os.Exit":     true,
}

var globalLoggerCalls = map[string]bool{
	"zap.L":              true,
	"zap.S":              true,
	"zap.ReplaceGlobals": true,
}

func main() {
	singlechecker.Main(Analyzer)
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.FuncDecl)(nil),
	}

	inMain := false
	inspect.Preorder(nodeFilter, func(n ast.Node) {
		switch node := n.(type) {
		case *ast.FuncDecl:
			inMain = pass.Pkg.Name() == "main" && node.Name.Name == "main" && node.Recv == nil
		case *ast.CallExpr:
			if ident, ok := node.Fun.(*ast.Ident); ok && ident.Name == "panic" {
				pass.Reportf(ident.Pos(), "found usage of panic")
				return
			}

			name := selectorName(node.Fun)
			switch {
			case exitCalls[name] && !inMain:
				pass.Reportf(node.Pos(), "found usage of %s outside of main function", name)
			case globalLoggerCalls[name]:
				pass.Reportf(node.Pos(), "found usage of global logger %s; pass a *zap.SugaredLogger instead", name)
			}
		}
	})

	return nil, nil
}

// selectorName returns "pkg.Func" for a call of a package-level function.
func selectorName(fun ast.Expr) string {
	sel, ok := fun.(*ast.SelectorExpr)
	if !ok {
		return ""
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return ""
	}
	return ident.Name + "." + sel.Sel.Name
}
