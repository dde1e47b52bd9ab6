package convert

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"sort"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"
)

// droppable lists imports a rewrite can leave unused.
var droppable = []string{assertPath, requirePath, "strings"}

// fixImports adds the truth import and any extra imports the rewritten
// assertions need, removes imports that are no longer used, and formats
// the file.
func (c *Converter) fixImports(filename string, src []byte, extra map[string]bool) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, &ConvertError{File: filename, Err: fmt.Errorf("rewritten source does not parse: %w", err)}
	}

	alias := c.cfg.TruthAlias
	if alias == path.Base(c.cfg.TruthImport) {
		alias = ""
	}
	astutil.AddNamedImport(fset, file, alias, c.cfg.TruthImport)

	paths := make([]string, 0, len(extra))
	for p := range extra {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		astutil.AddImport(fset, file, p)
	}

	for _, dropped := range droppable {
		if astutil.UsesImport(file, dropped) {
			continue
		}
		for _, imp := range file.Imports {
			p, err := strconv.Unquote(imp.Path.Value)
			if err != nil || p != dropped {
				continue
			}
			name := ""
			if imp.Name != nil {
				name = imp.Name.Name
			}
			if name == "_" {
				continue
			}
			astutil.DeleteNamedImport(fset, file, name, dropped)
			break
		}
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, &ConvertError{File: filename, Err: fmt.Errorf("failed to format: %w", err)}
	}
	return buf.Bytes(), nil
}
