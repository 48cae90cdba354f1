package models

import (
	"errors"
	"hash/fnv"
	"strings"
)

// Tutor-related errors
var (
	ErrEmptyTutorName        = errors.New("tutor name cannot be empty")
	ErrTutorNameTooLong      = errors.New("tutor name cannot exceed 50 characters")
	ErrInvalidTutorCharacter = errors.New("tutor name contains invalid characters")
	ErrEmptyTutorPrompt      = errors.New("tutor prompt cannot be empty")
)

// Tutor is a language teacher persona handed to the inference server
type Tutor struct {
	Name    string `yaml:"name"`
	Prompt  string `yaml:"prompt"`
	BuiltIn bool   `yaml:"-"`
}

// TutorFile holds the custom tutors persisted by the user
type TutorFile struct {
	Tutors []Tutor `yaml:"tutors"`
}

// DefaultColorPalette provides a curated set of colors for tutor names
var DefaultColorPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#f1c40f", // yellow
	"#2980b9", // belize hole
}

// TutorColor returns a stable color for a tutor name
func TutorColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(name)))
	return DefaultColorPalette[int(h.Sum32()%uint32(len(DefaultColorPalette)))]
}

// ValidateTutor checks a tutor's name and prompt. Names may contain letters
// of any script, digits, spaces and hyphens.
func ValidateTutor(t Tutor) error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ErrEmptyTutorName
	}
	if len([]rune(name)) > 50 {
		return ErrTutorNameTooLong
	}
	for _, r := range name {
		if !(isLetterOrDigit(r) || r == '-' || r == ' ' || r == '(' || r == ')') {
			return ErrInvalidTutorCharacter
		}
	}
	if strings.TrimSpace(t.Prompt) == "" {
		return ErrEmptyTutorPrompt
	}
	return nil
}

func isLetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
}
