package tutors

import (
	"fmt"

	"github.com/shokunin/langotango/pkg/models"
)

type persona struct {
	name     string
	identity string
	language string
}

var personas = []persona{
	{"Japanese", "Japanese", "Japanese"},
	{"Mandarin", "Chinese", "Mandarin Chinese"},
	{"Korean", "Korean", "Korean"},
	{"Spanish", "Spanish", "Spanish"},
	{"Italian", "Italian", "Italian"},
	{"French", "French", "French"},
	{"German", "German", "German"},
	{"Portuguese", "Portuguese", "Portuguese"},
	{"Dutch", "Dutch", "Dutch"},
	{"Greek", "Greek", "Greek"},
	{"Hebrew", "Israeli", "Hebrew"},
	{"Arabic", "Arab", "Arabic"},
	{"Hindi", "Indian", "Hindi"},
}

const promptTemplate = `You are %s and you are a %s language teacher.
You react to what the user is writing with encouragement.
If you see issues, be a critical teacher and correct them.
Check spelling but accept slang. Do not repeat yourself often. Limit your responses to one sentence.
You can also speak the same language as the user while you teach them %s.`

// BuiltIn returns the tutors that ship with the application, in display
// order.
func BuiltIn() []models.Tutor {
	out := make([]models.Tutor, 0, len(personas))
	for _, p := range personas {
		out = append(out, models.Tutor{
			Name:    p.name,
			Prompt:  fmt.Sprintf(promptTemplate, p.identity, p.language, p.language),
			BuiltIn: true,
		})
	}
	return out
}
