package sandbox

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"algoviz/internal/structures"
)

// structSymbols exposes the instrumented structure types to interpreted
// code under the "algoviz/structs" import path, so learner code can declare
// typed parameters like `func solve(s *structs.Stack) int`.
func structSymbols() interp.Exports {
	return interp.Exports{
		"algoviz/structs/structs": map[string]reflect.Value{
			"Stack":            reflect.ValueOf((*structures.Stack)(nil)),
			"Queue":            reflect.ValueOf((*structures.Queue)(nil)),
			"LinkedList":       reflect.ValueOf((*structures.LinkedList)(nil)),
			"BinarySearchTree": reflect.ValueOf((*structures.BinarySearchTree)(nil)),
			"Graph":            reflect.ValueOf((*structures.Graph)(nil)),
			"HashMap":          reflect.ValueOf((*structures.HashMap)(nil)),
		},
	}
}
