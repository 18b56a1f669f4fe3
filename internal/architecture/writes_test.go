package architecture_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

var repoWriteMethods = map[string]bool{
	"Save":                    true,
	"Delete":                  true,
	"CopyToProject":           true,
	"BulkUpdatePublishStatus": true,
}

// serviceFields records which struct fields hold repositories and which hold
// the aggregate writer.
type serviceFields struct {
	repos   map[string]string
	writers map[string]bool
}

type repoWriteSite struct {
	method   string
	call     string
	pos      string
	inWriter bool
}

// TestServiceRepoWritesRunInsideWriter fails when a service mutates a
// repository outside an aggregates.Writer closure, since such writes would
// skip the transaction and the post-commit event dispatch.
func TestServiceRepoWritesRunInsideWriter(t *testing.T) {
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}

	paths, err := filepath.Glob(filepath.Join(root, "internal", "services", "*.go"))
	if err != nil {
		t.Fatalf("glob services: %v", err)
	}
	fset := token.NewFileSet()
	var files []*ast.File
	for _, p := range paths {
		if strings.HasSuffix(p, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, p, nil, 0)
		if err != nil {
			t.Fatalf("parse %s: %v", p, err)
		}
		files = append(files, f)
	}

	fieldsByStruct := map[string]serviceFields{}
	for _, f := range files {
		collectServiceFields(f, fieldsByStruct)
	}
	if len(fieldsByStruct) == 0 {
		t.Fatalf("no service structs with repository fields found")
	}

	var sites []repoWriteSite
	for _, f := range files {
		sites = append(sites, collectRepoWrites(fset, root, f, fieldsByStruct)...)
	}
	if len(sites) == 0 {
		t.Fatalf("no repository writes found in services")
	}

	var residual []string
	for _, s := range sites {
		if !s.inWriter {
			residual = append(residual, fmt.Sprintf("- %s: %s in %s", s.pos, s.call, s.method))
		}
	}
	sort.Strings(residual)
	if len(residual) > 0 {
		t.Fatalf("repository writes outside writer.Write:\n%s", strings.Join(residual, "\n"))
	}
}

func collectServiceFields(file *ast.File, out map[string]serviceFields) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil {
				continue
			}
			sf := serviceFields{repos: map[string]string{}, writers: map[string]bool{}}
			for _, field := range st.Fields.List {
				sel, ok := field.Type.(*ast.SelectorExpr)
				if !ok {
					continue
				}
				pkg, ok := sel.X.(*ast.Ident)
				if !ok {
					continue
				}
				for _, name := range field.Names {
					switch {
					case pkg.Name == "repos" && strings.HasSuffix(sel.Sel.Name, "Repo"):
						sf.repos[name.Name] = sel.Sel.Name
					case pkg.Name == "aggregates" && sel.Sel.Name == "Writer":
						sf.writers[name.Name] = true
					}
				}
			}
			if len(sf.repos) > 0 {
				out[ts.Name.Name] = sf
			}
		}
	}
}

func collectRepoWrites(fset *token.FileSet, root string, file *ast.File, fieldsByStruct map[string]serviceFields) []repoWriteSite {
	var out []repoWriteSite
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || fd.Body == nil || len(fd.Recv.List) == 0 {
			continue
		}
		recvName, recvType := receiver(fd.Recv.List[0])
		fields, ok := fieldsByStruct[recvType]
		if !ok || recvName == "" {
			continue
		}

		var stack []ast.Node
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			if n == nil {
				stack = stack[:len(stack)-1]
				return true
			}
			if call, ok := n.(*ast.CallExpr); ok {
				if field, method, ok := repoWriteCall(call, recvName, fields); ok {
					pos := fset.Position(call.Pos())
					rel, err := filepath.Rel(root, pos.Filename)
					if err != nil {
						rel = pos.Filename
					}
					out = append(out, repoWriteSite{
						method:   recvType + "." + fd.Name.Name,
						call:     field + "." + method,
						pos:      fmt.Sprintf("%s:%d", filepath.ToSlash(rel), pos.Line),
						inWriter: insideWriterClosure(stack, recvName, fields),
					})
				}
			}
			stack = append(stack, n)
			return true
		})
	}
	return out
}

func receiver(field *ast.Field) (name, typ string) {
	if len(field.Names) > 0 {
		name = field.Names[0].Name
	}
	expr := field.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		typ = ident.Name
	}
	return name, typ
}

// repoWriteCall matches recv.<repoField>.<WriteMethod>(...).
func repoWriteCall(call *ast.CallExpr, recvName string, fields serviceFields) (string, string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || !repoWriteMethods[sel.Sel.Name] {
		return "", "", false
	}
	field, ok := receiverField(sel.X, recvName)
	if !ok {
		return "", "", false
	}
	if _, isRepo := fields.repos[field]; !isRepo {
		return "", "", false
	}
	return field, sel.Sel.Name, true
}

func receiverField(expr ast.Expr, recvName string) (string, bool) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return "", false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok || ident.Name != recvName {
		return "", false
	}
	return sel.Sel.Name, true
}

// insideWriterClosure reports whether the innermost enclosing func literal on
// stack is an argument of recv.<writer>.Write(...).
func insideWriterClosure(stack []ast.Node, recvName string, fields serviceFields) bool {
	for i := len(stack) - 1; i > 0; i-- {
		if _, ok := stack[i].(*ast.FuncLit); !ok {
			continue
		}
		call, ok := stack[i-1].(*ast.CallExpr)
		if !ok {
			return false
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Write" {
			return false
		}
		field, ok := receiverField(sel.X, recvName)
		return ok && fields.writers[field]
	}
	return false
}
