package examples

func getVocabularyExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Vocabulary Lists",
			Description: "Themed word lists kept in Research",
			Documents: []ExampleDocument{
				{
					Path: "Research/Vocabulary/Food",
					Content: `## Food

- le pain: bread
- le fromage: cheese
- la pomme: apple
- l'eau: water`,
				},
				{
					Path: "Research/Vocabulary/Travel",
					Content: `## Travel

- la gare: train station
- le billet: ticket
- l'aéroport: airport`,
				},
				{
					Path: "Research/Vocabulary/Verbs",
					Content: `## Common verbs

- être: to be
- avoir: to have
- aller: to go
- faire: to do`,
				},
			},
		},
	}
}
