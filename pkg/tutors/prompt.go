package tutors

import (
	"fmt"
	"strings"

	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/utils"
)

// DefaultExcerptLength is how much of the end of the writer's text a tutor
// sees.
const DefaultExcerptLength = 500

// Prompt is the request handed to an inference server. Chat servers take
// System and User as separate messages; completion servers take Combined.
type Prompt struct {
	Tutor    string
	System   string
	User     string
	Combined string
	Excerpt  string
}

// BuildPrompt assembles the tutor request from the last excerptLength
// characters of text. A non-positive excerptLength uses the default.
func BuildPrompt(t models.Tutor, text string, excerptLength int) (Prompt, error) {
	if excerptLength <= 0 {
		excerptLength = DefaultExcerptLength
	}
	excerpt := utils.TailRunes(text, excerptLength)
	if strings.TrimSpace(excerpt) == "" {
		return Prompt{}, fmt.Errorf("nothing to send to %s: the document is empty", t.Name)
	}

	return Prompt{
		Tutor:  t.Name,
		System: t.Prompt,
		User:   "Here's what I'm working on:\n\n" + excerpt,
		Combined: fmt.Sprintf("%s\n\nHere's what the user is currently working on:\n\n%s\n\nNow respond with a brief, encouraging message:",
			t.Prompt, excerpt),
		Excerpt: excerpt,
	}, nil
}
