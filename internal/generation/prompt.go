package generation

import (
	"strings"

	"neural-uplink/internal/history"
)

// BuildPrompt flattens the system instruction, the prior conversation and the
// new user line into a single prompt. The assistant persona is named
// assistantName in the transcript and the prompt ends with its cue.
func BuildPrompt(systemInstruction, assistantName string, prior []history.Message, newUserText string) string {
	var b strings.Builder
	if s := strings.TrimSpace(systemInstruction); s != "" {
		b.WriteString(s)
		b.WriteString("\n\n")
	}

	b.WriteString("Conversation History:\n")
	for _, m := range prior {
		b.WriteString(speaker(m.Role, assistantName))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	b.WriteString("\nUser: ")
	b.WriteString(newUserText)
	b.WriteString("\n")
	b.WriteString(assistantName)
	b.WriteString(":")
	return b.String()
}

func speaker(role history.Role, assistantName string) string {
	if role == history.RoleUser {
		return "User"
	}
	return assistantName
}
