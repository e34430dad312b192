package simulated

import (
	"strings"

	"github.com/sakif/codeclass/internal/executor"
)

const msgJavaNoPrint = "No output generated. Did you use System.out.print?"

func runJava(code string) executor.ExecutionResult {
	args := callArgs(code, "System.out.println(", "System.out.print(")
	if len(args) == 0 {
		return failure(msgJavaNoPrint)
	}

	lines := make([]string, 0, len(args))
	for _, a := range args {
		lines = append(lines, javaPrintText(a))
	}
	return success(strings.Join(lines, "\n"))
}

// javaPrintText strips only the opening quote of a string argument; the
// rest, closing quote included, is shown as written:
// System.out.println("Hi") shows Hi".
func javaPrintText(arg string) string {
	a := strings.TrimSpace(arg)
	if strings.HasPrefix(a, `"`) {
		return a[1:]
	}
	return "[Evaluated: " + a + "]"
}
