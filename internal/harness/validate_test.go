package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "empty source",
			source:  "",
			wantErr: "code is empty",
		},
		{
			name:    "whitespace only",
			source:  "  \n\t  ",
			wantErr: "code is empty",
		},
		{
			name:    "missing closing brace",
			source:  "func f() { if true {",
			wantErr: "unbalanced braces",
		},
		{
			name:    "extra closing paren",
			source:  "func f()) {}",
			wantErr: "unbalanced parentheses",
		},
		{
			name:    "unbalanced brackets",
			source:  "func f() { a := [2]int{1, 2}; _ = a[0 }",
			wantErr: "unbalanced brackets",
		},
		{
			name:    "no function",
			source:  "var x = 42",
			wantErr: "No function found",
		},
		{
			name:   "valid function",
			source: "func f() int { return 1 }",
		},
		{
			name:   "braces inside string literal ignored",
			source: `func f() string { return "}}}" }`,
		},
		{
			name:   "braces inside comment ignored",
			source: "func f() {\n\t// } } }\n}",
		},
		{
			name:   "braces inside raw string ignored",
			source: "func f() string { return `{{{` }",
		},
		{
			name:    "func only inside string does not count",
			source:  `var x = "func f() {}"`,
			wantErr: "No function found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.source)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
