package simulated

import (
	"strings"

	"github.com/sakif/codeclass/internal/executor"
)

const (
	msgCNoPrintf   = "No output generated. Did you use printf?"
	msgCPPNoCout   = "No output generated. Did you use cout?"
	clangGenericOK = "Output from C/C++ code (simulated)"
)

func runC(code string) executor.ExecutionResult {
	if !strings.Contains(code, "printf") {
		return failure(msgCNoPrintf)
	}
	if text, ok := printfLiteral(code); ok {
		return success(text)
	}
	return success(clangGenericOK)
}

func runCPP(code string) executor.ExecutionResult {
	if !strings.Contains(code, "cout") {
		return failure(msgCPPNoCout)
	}
	if text, ok := coutLiteral(code); ok {
		return success(text)
	}
	return success(clangGenericOK)
}

// printfLiteral matches printf("<text>") and returns <text>: everything from
// the first quote after printf( up to the last `")` on that line.
func printfLiteral(code string) (string, bool) {
	const opener = `printf("`

	for from := 0; ; {
		i := strings.Index(code[from:], opener)
		if i < 0 {
			return "", false
		}
		start := from + i + len(opener)

		line := lineAt(code, start)
		if end := strings.LastIndex(line, `")`); end >= 0 {
			return line[:end], true
		}
		// A later printf(" on this line sees a suffix of it, so it can't
		// match either.
		from = start + len(line)
	}
}

// coutLiteral matches cout << "<text>" and returns <text>, which ends at the
// next double quote on the same line.
func coutLiteral(code string) (string, bool) {
	for from := 0; ; {
		i := strings.Index(code[from:], "cout")
		if i < 0 {
			return "", false
		}
		from += i + len("cout")

		rest := strings.TrimLeft(code[from:], " \t")
		rest, ok := strings.CutPrefix(rest, "<<")
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " \t"), `"`)
		if !ok {
			continue
		}

		end := strings.IndexAny(rest, "\"\n")
		if end < 0 {
			return "", false
		}
		if rest[end] == '"' {
			return rest[:end], true
		}
		// No closing quote before the newline, so no later cout on this
		// line has an opening one.
		from = len(code) - len(rest) + end
	}
}
