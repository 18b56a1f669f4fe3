package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// layerRule lists what production code under prefix may not import. Internal
// entries are relative to the module path; external entries are matched as-is.
type layerRule struct {
	prefix   string
	internal []string
	external []string
}

var layerRules = []layerRule{
	{
		prefix:   "internal/domain/",
		internal: []string{"internal/data/", "internal/services", "internal/http", "internal/app", "internal/platform/", "internal/realtime/", "internal/observability"},
		external: []string{"gorm.io/", "github.com/gin-gonic/", "github.com/redis/"},
	},
	{
		prefix:   "internal/platform/",
		internal: []string{"internal/data/", "internal/services", "internal/http", "internal/app", "internal/realtime/"},
		external: []string{"github.com/gin-gonic/"},
	},
	{
		prefix:   "internal/data/",
		internal: []string{"internal/services", "internal/http", "internal/app", "internal/realtime/"},
		external: []string{"github.com/gin-gonic/"},
	},
	{
		prefix:   "internal/services/",
		internal: []string{"internal/http", "internal/app", "internal/realtime/", "internal/data/models"},
		external: []string{"github.com/gin-gonic/"},
	},
	{
		prefix:   "internal/realtime/",
		internal: []string{"internal/data/", "internal/services", "internal/http", "internal/app"},
	},
	{
		prefix:   "internal/http/",
		internal: []string{"internal/data/", "internal/app", "internal/realtime/"},
		external: []string{"gorm.io/"},
	},
}

func ruleFor(rel string) *layerRule {
	for i := range layerRules {
		if strings.HasPrefix(rel, layerRules[i].prefix) {
			return &layerRules[i]
		}
	}
	return nil
}

func (r *layerRule) violation(modulePath, imp string) string {
	for _, bad := range r.internal {
		if strings.HasPrefix(imp, modulePath+"/"+bad) {
			return bad
		}
	}
	for _, bad := range r.external {
		if strings.HasPrefix(imp, bad) {
			return bad
		}
	}
	return ""
}

// Test files are exempt so handler tests can run against real repositories.
func TestImportBoundaries(t *testing.T) {
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}

	fset := token.NewFileSet()
	var violations []string
	walkErr := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		rule := ruleFor(rel)
		if rule == nil {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			if bad := rule.violation(modulePath, imp); bad != "" {
				violations = append(violations, fmt.Sprintf("- %s imports %q (disallowed: %q)", rel, imp, bad))
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestRuleMatching(t *testing.T) {
	const mod = "example.com/site"
	rule := ruleFor("internal/domain/pages/page.go")
	if rule == nil {
		t.Fatalf("domain file: want rule")
	}
	if got := rule.violation(mod, mod+"/internal/data/models"); got != "internal/data/" {
		t.Fatalf("domain -> data: want=internal/data/ got=%q", got)
	}
	if got := rule.violation(mod, "gorm.io/datatypes"); got != "gorm.io/" {
		t.Fatalf("domain -> gorm: want=gorm.io/ got=%q", got)
	}
	if got := rule.violation(mod, mod+"/internal/domain/events"); got != "" {
		t.Fatalf("domain -> domain: want allowed got=%q", got)
	}
	if ruleFor("cmd/main.go") != nil {
		t.Fatalf("cmd is unconstrained")
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		mp := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		if mp == "" {
			return "", fmt.Errorf("empty module path in %s", goModPath)
		}
		return mp, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
