// Package simulated is the playground's fake execution engine.
//
// Nothing here parses, compiles or runs student code. Each language looks
// at the surface of the source text (print calls, keywords, string
// literals) and fabricates the output a beginner would expect to see.
// Run is a pure function: the same code, stdin and language always give the
// same result.
package simulated

import (
	"context"

	"github.com/sakif/codeclass/internal/executor"
)

// Compile-time check that *Engine can stand in wherever an Executor is wanted.
var _ executor.Executor = (*Engine)(nil)

// Engine adapts Run to the executor.Executor interface.
type Engine struct{}

// New returns the simulated engine. It holds no state.
func New() *Engine {
	return &Engine{}
}

// Execute runs the request through Run. The only error it returns is the
// context's, when the caller has already given up.
func (e *Engine) Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := Run(req.Code, req.Stdin, req.Language)
	return &res, nil
}

// Run produces the simulated output for code in lang, reading stdin only
// where the language's input pattern asks for it.
func Run(code, stdin string, lang executor.Language) executor.ExecutionResult {
	switch lang {
	case executor.Python:
		return runPython(code, stdin)
	case executor.Java:
		return runJava(code)
	case executor.C:
		return runC(code)
	case executor.CPP:
		return runCPP(code)
	case executor.SQL:
		return runSQL(code)
	default:
		return failure("Unsupported language: " + string(lang))
	}
}

func success(output string) executor.ExecutionResult {
	return executor.ExecutionResult{Output: output}
}

func failure(msg string) executor.ExecutionResult {
	return executor.ExecutionResult{Error: &msg}
}
