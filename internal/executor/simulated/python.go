package simulated

import (
	"strconv"
	"strings"

	"github.com/sakif/codeclass/internal/executor"
)

const (
	msgPythonReadsOnly = "Your code reads input but doesn't print anything."
	msgPythonNoCode    = "No code to execute."
	msgPythonNoPrint   = "No output generated. Did you forget to use print()?"
	msgPythonEOF       = "SyntaxError: unexpected EOF while parsing"
)

// printArg is the classification of a print(...) argument.
type printArg int

const (
	quotedLiteral printArg = iota
	numericLiteral
	inputCall
	unresolved
)

// classifyPrintArg decides what a print argument shows. stdin must already
// be trimmed.
func classifyPrintArg(arg, stdin string) (printArg, string) {
	a := strings.TrimSpace(arg)

	switch {
	case a == "":
		// print() writes an empty line.
		return quotedLiteral, ""
	case isQuoted(a):
		return quotedLiteral, a[1 : len(a)-1]
	case isNumeric(a):
		return numericLiteral, a
	case a == "input()" && stdin != "":
		return inputCall, stdin
	default:
		return unresolved, "[Variable: " + a + "]"
	}
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return first == last && (first == '"' || first == '\'')
}

// isNumeric accepts decimal integer and float literals. Words ParseFloat
// also takes ("inf", "NaN") are names in student code, not numbers.
func isNumeric(s string) bool {
	if s == "" || strings.ContainsAny(strings.ToLower(s), "inax") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func runPython(code, stdin string) executor.ExecutionResult {
	in := strings.TrimSpace(stdin)

	var res executor.ExecutionResult
	if args := callArgs(code, "print("); len(args) > 0 {
		lines := make([]string, 0, len(args))
		for _, a := range args {
			_, text := classifyPrintArg(a, in)
			lines = append(lines, text)
		}
		res = success(strings.Join(lines, "\n"))
	} else {
		switch {
		case strings.Contains(code, "input(") && !strings.Contains(code, "print("):
			res = failure(msgPythonReadsOnly)
		case strings.TrimSpace(code) == "":
			res = success(msgPythonNoCode)
		default:
			res = failure(msgPythonNoPrint)
		}
	}

	// An unclosed print wins over everything above, output included.
	if strings.Contains(code, "print(") && !strings.Contains(code, ")") {
		return failure(msgPythonEOF)
	}

	if strings.Contains(code, "input(") && in != "" {
		// The banner echoes stdin as typed; only input() sees it trimmed.
		first, _, _ := strings.Cut(stdin, "\n")
		banner := "Using input: " + strings.TrimRight(first, "\r")
		if res.Output == "" {
			res.Output = banner
		} else {
			res.Output = banner + "\n" + res.Output
		}
	}

	return res
}
