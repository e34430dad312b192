// Package presenter turns an execution result into what the playground's
// output panel shows: the text, the diagnostic, a line count for the editor
// gutter and a status label.
package presenter

import (
	"strings"

	"github.com/sakif/codeclass/internal/executor"
)

// Status is the label above the output panel.
type Status string

const (
	StatusReady   Status = "Ready"
	StatusRunning Status = "Running"
	StatusSuccess Status = "Executed successfully"
	StatusFailed  Status = "Execution failed"
)

// View is the JSON body returned by the execute endpoint.
type View struct {
	Output    string  `json:"output"`
	Error     *string `json:"error"`
	LineCount int     `json:"lineCount"`
	Status    Status  `json:"status"`
}

// LineCount counts newline-separated segments, so "" is one line and a
// trailing newline adds an empty last line.
func LineCount(source string) int {
	return strings.Count(source, "\n") + 1
}

// StatusLabel picks the label in priority order: running, error, output,
// ready. A nil result means nothing has run yet.
func StatusLabel(running bool, res *executor.ExecutionResult) Status {
	switch {
	case running:
		return StatusRunning
	case res == nil:
		return StatusReady
	case res.Error != nil:
		return StatusFailed
	case res.Output != "":
		return StatusSuccess
	default:
		return StatusReady
	}
}

// Present builds the view for source and its latest result.
func Present(source string, res *executor.ExecutionResult, running bool) View {
	v := View{
		LineCount: LineCount(source),
		Status:    StatusLabel(running, res),
	}
	if res != nil {
		v.Output = res.Output
		v.Error = res.Error
	}
	return v
}
