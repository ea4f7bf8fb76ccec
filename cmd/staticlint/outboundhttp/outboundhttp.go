// Package outboundhttp keeps every call to the trips API inside the API
// client package, where requests get the session token and failure logging.
package outboundhttp

import (
	"go/ast"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports package-level HTTP helpers of net/http and new resty
// clients used outside internal/apiclient. Test files are not checked.
var Analyzer = &analysis.Analyzer{
	Name: "outboundhttp",
	Doc:  "reports outbound HTTP calls made outside internal/apiclient",
	Run:  run,
}

const allowedPackageSuffix = "internal/apiclient"

var forbidden = map[string]map[string]bool{
	"net/http": {
		"Get":           true,
		"Head":          true,
		"Post":          true,
		"PostForm":      true,
		"DefaultClient": true,
	},
	"github.com/go-resty/resty/v2": {
		"New": true,
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	if strings.HasSuffix(pass.Pkg.Path(), allowedPackageSuffix) {
		return nil, nil
	}

	for _, file := range pass.Files {
		filename := filepath.ToSlash(pass.Fset.File(file.Pos()).Name())
		if strings.HasSuffix(filename, "_test.go") || isGoBuildCacheFile(filename) {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			obj := pass.TypesInfo.Uses[sel.Sel]
			if obj == nil || obj.Pkg() == nil {
				return true
			}
			// Methods and fields share names with the helpers; only
			// package-level objects count.
			if obj.Parent() != obj.Pkg().Scope() {
				return true
			}
			if names, found := forbidden[obj.Pkg().Path()]; found && names[obj.Name()] {
				pass.Reportf(sel.Pos(), "outbound HTTP via %s.%s outside %s", obj.Pkg().Name(), obj.Name(), allowedPackageSuffix)
			}

			return true
		})
	}

	return nil, nil
}

func isGoBuildCacheFile(path string) bool {
	return strings.Contains(path, "/go-build/")
}
