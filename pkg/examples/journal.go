package examples

func getJournalExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Daily Journal",
			Description: "Short daily entries for writing practice",
			Documents: []ExampleDocument{
				{
					Path: "Journal/Monday",
					Content: `Heute war ein langer Tag. Ich habe viel gearbeitet.

Am Abend bin ich spazieren gegangen.`,
				},
				{
					Path: "Journal/Tuesday",
					Content: `Es hat den ganzen Tag geregnet.

Ich habe ein Buch gelesen und **Tee** getrunken.`,
				},
				{
					Path: "Research/Journal Prompts",
					Content: `## Prompts

1. What did you eat today?
2. Who did you talk to?
3. What will you do tomorrow?`,
				},
			},
		},
	}
}
