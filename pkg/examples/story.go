package examples

func getStoryExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Short Story",
			Description: "A three-part story skeleton with a character sheet in Research",
			Documents: []ExampleDocument{
				{
					Path: "Story/Beginning",
					Content: `# El faro

Marta vivía sola en el faro desde hacía diez años.

Cada noche subía la escalera y encendía la luz.`,
				},
				{
					Path: "Story/Middle",
					Content: `Una noche la luz **no se encendió**.

Marta bajó al pueblo por primera vez en meses.`,
				},
				{
					Path:    "Story/End",
					Content: `Cuando volvió, el faro ya brillaba. _Alguien_ la estaba esperando.`,
				},
				{
					Path: "Research/Characters/Marta",
					Content: `## Marta

- Age: 54
- Lives alone in the lighthouse
- Speaks slowly, in short sentences`,
				},
			},
		},
	}
}
