package chat

import (
	"fmt"
	"strings"
)

// FormatSimplified asks for a shorter, plainer explanation.
const FormatSimplified = "simplified"

// Request is what a student typed into the chatbot, with the optional
// context the site knows about them.
type Request struct {
	Message      string `json:"message"`
	StudentClass string `json:"studentClass,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Format       string `json:"format,omitempty"`
}

// Reply is the model's answer, passed through untouched.
type Reply struct {
	Response string `json:"response"`
}

// BuildPrompt wraps a student's question in the tutor instructions.
func BuildPrompt(q Request) string {
	var b strings.Builder

	b.WriteString("You are a friendly tutor for secondary-school students.")
	if q.StudentClass != "" {
		fmt.Fprintf(&b, " The student is in class %s.", q.StudentClass)
	}
	if q.Subject != "" {
		fmt.Fprintf(&b, " The question is about %s.", q.Subject)
	}
	if q.Format == FormatSimplified {
		b.WriteString(" Explain in simple words, in at most five short sentences, with one everyday example.")
	} else {
		b.WriteString(" Answer clearly and step by step, using markdown for code and formulas.")
	}
	b.WriteString("\n\nQuestion:\n")
	b.WriteString(strings.TrimSpace(q.Message))

	return b.String()
}
