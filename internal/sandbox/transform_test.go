package sandbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformWrapsBareSource(t *testing.T) {
	prog, execErr := transform("func solve() int { return 1 }", 0, nil)
	require.Nil(t, execErr)
	assert.True(t, strings.HasPrefix(prog.source, "package main"))
	assert.Equal(t, "solve", prog.entry)
}

func TestTransformKeepsExistingPackageClause(t *testing.T) {
	src := "package main\n\nfunc run() {}"
	prog, execErr := transform(src, 0, nil)
	require.Nil(t, execErr)
	assert.Equal(t, "run", prog.entry)
	assert.Equal(t, 1, strings.Count(prog.source, "package main"))
}

func TestTransformEntryDiscovery(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "first function declaration wins",
			source: "func first() {}\nfunc second() {}",
			want:   "first",
		},
		{
			name:   "function literal bound to a name",
			source: "var solve = func(n int) int { return n }",
			want:   "solve",
		},
		{
			name:   "init is not an entry point",
			source: "func init() {}\nfunc actual() {}",
			want:   "actual",
		},
		{
			name:   "methods are not entry points",
			source: "type T struct{}\nfunc (T) m() {}\nfunc free() {}",
			want:   "free",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, execErr := transform(tt.source, 0, nil)
			require.Nil(t, execErr)
			assert.Equal(t, tt.want, prog.entry)
		})
	}
}

func TestTransformNoFunction(t *testing.T) {
	_, execErr := transform("var x = 5", 0, nil)
	require.NotNil(t, execErr)
	assert.Equal(t, ErrNoFunction, execErr.Kind)
	assert.Equal(t, "Could not find a function", execErr.Message)
}

func TestTransformSyntaxError(t *testing.T) {
	_, execErr := transform("func broken( {", 0, nil)
	require.NotNil(t, execErr)
	assert.Equal(t, ErrRuntime, execErr.Kind)
	assert.Contains(t, execErr.Message, "syntax error")
}

func TestTransformInjectsStructsImport(t *testing.T) {
	src := "func solve(s *structs.Stack) int { return s.Size() }"
	prog, execErr := transform(src, 0, nil)
	require.Nil(t, execErr)
	assert.Contains(t, prog.source, `"algoviz/structs"`)

	// Already-imported source must not gain a second import.
	src = "import \"algoviz/structs\"\n\nfunc solve(s *structs.Stack) int { return s.Size() }"
	prog, execErr = transform(src, 0, nil)
	require.Nil(t, execErr)
	assert.Equal(t, 1, strings.Count(prog.source, `"algoviz/structs"`))
}

func TestTransformRejectsForbiddenImports(t *testing.T) {
	src := "import \"os/exec\"\n\nfunc solve() { exec.Command(\"true\") }"
	_, execErr := transform(src, 0, []string{"fmt", "strings"})
	require.NotNil(t, execErr)
	assert.Equal(t, ErrRuntime, execErr.Kind)
	assert.Contains(t, execErr.Message, "os/exec")
}

func TestLoopGuardInstrumentation(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantGuard bool
		wantKind  string
	}{
		{
			name:      "bare for is a while loop",
			source:    "func spin() { for { } }",
			wantGuard: true,
			wantKind:  "while loop",
		},
		{
			name:      "condition-only for is a while loop",
			source:    "func spin(n int) { for n > 0 { } }",
			wantGuard: true,
			wantKind:  "while loop",
		},
		{
			name:      "three-clause for keeps its name",
			source:    "func count() { for i := 0; i < 10; i++ { } }",
			wantGuard: true,
			wantKind:  "for loop",
		},
		{
			name:      "range loops are left alone",
			source:    "func sum(xs []int) int { t := 0; for _, x := range xs { t += x }; return t }",
			wantGuard: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, execErr := transform(tt.source, 1000, nil)
			require.Nil(t, execErr)
			if tt.wantGuard {
				assert.Contains(t, prog.source, guardCounterName)
				assert.Contains(t, prog.source, "Infinite loop detected ("+tt.wantKind+")")
			} else {
				assert.NotContains(t, prog.source, guardCounterName)
			}
		})
	}
}

func TestLoopGuardDisabledByZeroCeiling(t *testing.T) {
	prog, execErr := transform("func spin() { for { } }", 0, nil)
	require.Nil(t, execErr)
	assert.NotContains(t, prog.source, guardCounterName)
}

func TestLoopGuardNumbersNestedLoops(t *testing.T) {
	src := "func nest() { for { for { } } }"
	prog, execErr := transform(src, 1000, nil)
	require.Nil(t, execErr)
	assert.Contains(t, prog.source, guardCounterName+"[0]")
	assert.Contains(t, prog.source, guardCounterName+"[1]")
	assert.Contains(t, prog.source, "[2]int")
}
