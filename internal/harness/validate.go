package harness

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var funcDeclRe = regexp.MustCompile(`\bfunc\b`)

// ValidateCode runs the cheap static checks a submission must pass before
// it is worth spinning up an interpreter. It catches the mistakes learners
// make constantly: empty editors, a dropped closing brace, code with no
// function at all. Anything subtler is left to the sandbox, which reports
// real parse errors with positions.
func ValidateCode(source string) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("code is empty")
	}
	if err := checkBalance(source); err != nil {
		return err
	}
	if !funcDeclRe.MatchString(stripLiterals(source)) {
		return errors.New("No function found")
	}
	return nil
}

type bracketPair struct {
	open, close rune
	name        string
}

var bracketPairs = []bracketPair{
	{'{', '}', "braces"},
	{'(', ')', "parentheses"},
	{'[', ']', "brackets"},
}

func checkBalance(source string) error {
	clean := stripLiterals(source)
	for _, p := range bracketPairs {
		depth := 0
		for _, r := range clean {
			switch r {
			case p.open:
				depth++
			case p.close:
				depth--
			}
			if depth < 0 {
				return fmt.Errorf("unbalanced %s", p.name)
			}
		}
		if depth != 0 {
			return fmt.Errorf("unbalanced %s", p.name)
		}
	}
	return nil
}

// stripLiterals blanks out string/rune literals and comments so brackets
// inside them do not skew the balance count. A single-pass scanner is
// enough; exact Go lexing is the sandbox's job.
func stripLiterals(source string) string {
	var out strings.Builder
	runes := []rune(source)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				i++
			}
			i += 2
			if i > len(runes) {
				i = len(runes)
			}
		case r == '"' || r == '\'':
			quote := r
			i++
			for i < len(runes) && runes[i] != quote {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			i++
		case r == '`':
			i++
			for i < len(runes) && runes[i] != '`' {
				i++
			}
			i++
		default:
			out.WriteRune(r)
			i++
		}
	}
	return out.String()
}
