package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/parse_cv_system.txt
	parseCVSystemPrompt string
	//go:embed prompts/parse_cv_user.txt
	parseCVUserPrompt string
)

// ParseCVRequest builds the prompt that asks for a JSON Resume rendering of cvText.
func ParseCVRequest(cvText string) Request {
	return Request{
		System: strings.TrimSpace(parseCVSystemPrompt),
		User:   strings.TrimRight(parseCVUserPrompt, "\n") + "\n\n" + cvText,
	}
}
