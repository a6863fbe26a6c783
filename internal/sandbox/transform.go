package sandbox

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"regexp"
	"strconv"
	"strings"
)

// structsImportPath is the import path under which the instrumented
// structure types are exposed to interpreted code.
const structsImportPath = "algoviz/structs"

// program is the executable unit produced by the source transform: the
// instrumented source text plus the discovered entry function name.
type program struct {
	source string
	entry  string
}

var packageClauseRe = regexp.MustCompile(`(?m)^[ \t]*package[ \t]+\w+`)

// transform turns raw learner source into an executable unit: wraps it in
// package main, enforces the import whitelist, injects the structs import
// when referenced, pre-instruments unbounded-looking loops with an
// iteration ceiling, and locates the entry function.
func transform(source string, ceiling int, allowed []string) (*program, *ExecError) {
	src := source
	if !packageClauseRe.MatchString(src) {
		src = "package main\n\n" + src
	}

	// Comments are dropped deliberately: the printed unit only has to run,
	// and comment-free ASTs survive statement injection cleanly.
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "learner.go", src, 0)
	if err != nil {
		return nil, runtimeErr("syntax error: %v", err)
	}
	file.Name = ast.NewIdent("main")

	if execErr := checkImports(file, allowed); execErr != nil {
		return nil, execErr
	}
	injectStructsImport(file)
	instrumentLoops(file, ceiling)

	entry := findEntry(file)
	if entry == "" {
		return nil, noFunctionErr()
	}

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, file); err != nil {
		return nil, crashErr("failed to print instrumented source: %v", err)
	}
	return &program{source: buf.String(), entry: entry}, nil
}

// checkImports rejects any import outside the stdlib whitelist. The
// structure package is always allowed.
func checkImports(file *ast.File, allowed []string) *ExecError {
	allowedSet := make(map[string]bool, len(allowed)+1)
	for _, pkg := range allowed {
		allowedSet[pkg] = true
	}
	allowedSet[structsImportPath] = true

	var forbidden []string
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || !allowedSet[path] {
			forbidden = append(forbidden, imp.Path.Value)
		}
	}
	if len(forbidden) > 0 {
		return runtimeErr("forbidden imports: %s (allowed: %s)",
			strings.Join(forbidden, ", "), strings.Join(allowed, ", "))
	}
	return nil
}

// injectStructsImport adds the structs import when learner code references
// the structs package without importing it, so snippets can stay terse.
func injectStructsImport(file *ast.File) {
	for _, imp := range file.Imports {
		if imp.Path.Value == strconv.Quote(structsImportPath) {
			return
		}
	}

	used := false
	ast.Inspect(file, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok && id.Name == "structs" && id.Obj == nil {
				used = true
				return false
			}
		}
		return true
	})
	if !used {
		return
	}

	decl := &ast.GenDecl{
		Tok: token.IMPORT,
		Specs: []ast.Spec{&ast.ImportSpec{
			Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(structsImportPath)},
		}},
	}
	file.Decls = append([]ast.Decl{decl}, file.Decls...)
}

// findEntry returns the name of the learner's primary entry function: the
// first top-level function declaration, or the first function literal bound
// to a top-level name. init is never an entry point.
func findEntry(file *ast.File) string {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name != "init" {
				return d.Name.Name
			}
		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for i, value := range vs.Values {
					if _, isFunc := value.(*ast.FuncLit); isFunc && i < len(vs.Names) {
						return vs.Names[i].Name
					}
				}
			}
		}
	}
	return ""
}
