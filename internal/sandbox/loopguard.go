package sandbox

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
)

// The loop guard statically scans learner code for unbounded-looking loop
// constructs and pre-instruments each with an iteration counter that panics
// once a fixed ceiling is exceeded, so a spinning loop surfaces as a
// distinguishable "Infinite loop detected" error instead of burning the
// whole wall-clock budget.
//
// This is a heuristic, not a termination proof: a large-but-finite loop can
// trip the ceiling, and a loop hidden behind recursion escapes the scan
// (the wall-clock timeout still catches it). The ceiling is configurable.
// Counters live at file scope and are never reset, so each is a per-run
// total for its loop, not a per-entry count: a bounded loop inside a helper
// called many times accumulates toward the ceiling across all calls.

// loopSentinel prefixes every guard panic so the recover path can tell a
// tripped guard from an ordinary learner panic.
const loopSentinel = "Infinite loop detected"

const (
	guardCounterName = "__loopIters"
	guardCeilingName = "__loopCeiling"
)

// instrumentLoops rewrites every `for` statement in file to bump a
// dedicated counter on each iteration and panic past the ceiling. Range
// loops are left alone: ranging over data is bounded by the data, and a
// range over a channel blocks rather than spins, which the wall-clock
// budget covers.
func instrumentLoops(file *ast.File, ceiling int) {
	if ceiling <= 0 {
		return
	}

	count := 0
	ast.Inspect(file, func(n ast.Node) bool {
		loop, ok := n.(*ast.ForStmt)
		if !ok {
			return true
		}
		loop.Body.List = append(guardStmts(count, loopKind(loop)), loop.Body.List...)
		count++
		return true
	})
	if count == 0 {
		return
	}

	// One counter slot per instrumented loop, declared at file scope so no
	// surrounding block has to be rewritten.
	counters := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names: []*ast.Ident{ast.NewIdent(guardCounterName)},
			Type: &ast.ArrayType{
				Len: intLit(count),
				Elt: ast.NewIdent("int"),
			},
		}},
	}
	limit := &ast.GenDecl{
		Tok: token.CONST,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent(guardCeilingName)},
			Values: []ast.Expr{intLit(ceiling)},
		}},
	}
	file.Decls = append(file.Decls, counters, limit)
}

// loopKind names the loop construct for the guard's error message. A `for`
// with no init and no post clause is Go's while loop, bare or conditional;
// a three-clause loop keeps the plain name.
func loopKind(loop *ast.ForStmt) string {
	if loop.Init == nil && loop.Post == nil {
		return "while loop"
	}
	return "for loop"
}

// guardStmts builds the two statements prepended to an instrumented loop
// body:
//
//	__loopIters[i]++
//	if __loopIters[i] > __loopCeiling { panic("Infinite loop detected (<kind>)") }
func guardStmts(index int, kind string) []ast.Stmt {
	counter := func() ast.Expr {
		return &ast.IndexExpr{
			X:     ast.NewIdent(guardCounterName),
			Index: intLit(index),
		}
	}
	msg := fmt.Sprintf("%s (%s)", loopSentinel, kind)

	inc := &ast.IncDecStmt{X: counter(), Tok: token.INC}
	guard := &ast.IfStmt{
		Cond: &ast.BinaryExpr{
			X:  counter(),
			Op: token.GTR,
			Y:  ast.NewIdent(guardCeilingName),
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ExprStmt{X: &ast.CallExpr{
				Fun:  ast.NewIdent("panic"),
				Args: []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(msg)}},
			}},
		}},
	}
	return []ast.Stmt{inc, guard}
}

func intLit(v int) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(v)}
}
