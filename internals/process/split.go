package process

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned by Split for command lines with an open quote
var ErrUnterminatedQuote = errors.New("unterminated quote in command line")

// Split breaks a command line into arguments. It understands the quoting
// produced by shellescape.Quote:
//
//   - 'single quotes' keep everything literally
//   - "double quotes" allow \" and \\ escapes
//   - outside of quotes a backslash only escapes a quote or whitespace,
//     so windows paths can be used unquoted
//
// Adjacent quoted and unquoted parts form one argument. A pair of empty quotes is an empty argument.
func Split(commandLine string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		// inArg is true once anything (even an empty quote pair) started an argument
		inArg bool
		quote rune
	)

	runes := []rune(commandLine)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch quote {
		case '\'':
			if r == '\'' {
				quote = 0
				continue
			}
			current.WriteRune(r)
			continue
		case '"':
			switch {
			case r == '"':
				quote = 0
			case r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
				i++
				current.WriteRune(runes[i])
			default:
				current.WriteRune(r)
			}
			continue
		}

		switch {
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == '\\' && i+1 < len(runes) && isEscapable(runes[i+1]):
			i++
			current.WriteRune(runes[i])
			inArg = true
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}

func isEscapable(r rune) bool {
	return r == '\'' || r == '"' || unicode.IsSpace(r)
}
