package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/tutors"
	"github.com/shokunin/langotango/pkg/utils"
)

// TutorOutput represents one tutor in list output
type TutorOutput struct {
	Name    string `json:"name" yaml:"name"`
	BuiltIn bool   `json:"built_in" yaml:"built_in"`
	Default bool   `json:"default,omitempty" yaml:"default,omitempty"`
	Prompt  string `json:"prompt" yaml:"prompt"`
}

// PromptOutput represents the request built for a tutor
type PromptOutput struct {
	Tutor    string `json:"tutor" yaml:"tutor"`
	Server   string `json:"server" yaml:"server"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	System   string `json:"system,omitempty" yaml:"system,omitempty"`
	User     string `json:"user,omitempty" yaml:"user,omitempty"`
	Prompt   string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Tokens   int    `json:"estimated_tokens" yaml:"estimated_tokens"`
	Document string `json:"document" yaml:"document"`
}

var (
	tutorPromptText string
	tutorPromptFile string
	tutorName       string
)

// NewTutorCommand creates the tutor command group
func NewTutorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutor",
		Short: "Manage language tutors",
		Long: `Manage the language tutors that react to your writing.

LangoTango ships tutors for Japanese, Mandarin, Korean, Spanish, Italian,
French, German, Portuguese, Dutch, Greek, Hebrew, Arabic and Hindi. Custom
tutors are stored in tutors.yaml next to the settings file.`,
	}

	cmd.AddCommand(newTutorListCommand())
	cmd.AddCommand(newTutorAddCommand())
	cmd.AddCommand(newTutorRemoveCommand())
	cmd.AddCommand(newTutorPromptCommand())

	return cmd
}

func newTutorListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tutors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext(cmd)
			if err != nil {
				return err
			}
			registry, err := ctx.Tutors()
			if err != nil {
				return err
			}
			defaultName := ctx.LoadSettingsWithDefault().Tutor.Default

			var out []TutorOutput
			for _, t := range registry.List(defaultName) {
				out = append(out, TutorOutput{
					Name:    t.Name,
					BuiltIn: t.BuiltIn,
					Default: strings.EqualFold(t.Name, defaultName),
					Prompt:  t.Prompt,
				})
			}

			switch f := outputFormat(cmd); f {
			case "json", "yaml":
				return cli.OutputResults(cmd.OutOrStdout(), f, out)
			}

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("TUTOR", "KIND", "PROMPT")
			for _, t := range out {
				kind := "built-in"
				if !t.BuiltIn {
					kind = "custom"
				}
				name := t.Name
				if t.Default {
					name += " *"
				}
				table.Row(cli.ColorizeTutor(name), kind, cli.TruncateString(oneLine(t.Prompt), 60))
			}
			table.Flush()
			return nil
		},
	}
}

func newTutorAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a custom tutor",
		Long: `Add a custom tutor, or replace one with the same name. A custom tutor
with the name of a built-in one takes its place until removed.

Examples:
  langotango tutor add Catalan --prompt "You are Catalan and you are a Catalan language teacher..."
  langotango tutor add "Kansai Japanese" --prompt-file kansai.txt`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if tutorPromptText == "" && tutorPromptFile == "" {
				return fmt.Errorf("give the tutor's instructions with --prompt or --prompt-file")
			}
			if tutorPromptFile != "" {
				return cli.ValidateFilePath(tutorPromptFile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := tutorPromptText
			if tutorPromptFile != "" {
				c, err := cli.ReadContentFile(tutorPromptFile)
				if err != nil {
					return err
				}
				prompt = c.PlainText()
			}

			ctx, err := projectContext(cmd)
			if err != nil {
				return err
			}
			registry, err := ctx.Tutors()
			if err != nil {
				return err
			}
			if err := registry.Add(models.Tutor{Name: args[0], Prompt: prompt}); err != nil {
				return err
			}
			if err := registry.Save(); err != nil {
				return err
			}
			cli.PrintSuccess("Saved tutor '%s'", strings.TrimSpace(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&tutorPromptText, "prompt", "", "Tutor instructions")
	cmd.Flags().StringVar(&tutorPromptFile, "prompt-file", "", "Read tutor instructions from a file")

	return cmd
}

func newTutorRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom tutor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext(cmd)
			if err != nil {
				return err
			}
			registry, err := ctx.Tutors()
			if err != nil {
				return err
			}
			if err := registry.Remove(args[0]); err != nil {
				return err
			}
			if err := registry.Save(); err != nil {
				return err
			}
			cli.PrintSuccess("Removed tutor '%s'", args[0])
			return nil
		},
	}
}

func newTutorPromptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [document]",
		Short: "Show the request a tutor would receive",
		Long: `Build the request sent to the local inference server for a document:
the tutor's instructions plus the end of the document's text.

The format follows tutor.server in settings: "ollama" gets one combined
prompt, "lmstudio" gets a system and a user message.

Examples:
  langotango tutor prompt
  langotango tutor prompt "Chapter 1" --tutor Korean -o json`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: validateProject,
		RunE:    runTutorPrompt,
	}

	cmd.Flags().StringVarP(&tutorName, "tutor", "t", "", "Tutor to use (default from settings)")

	return cmd
}

func runTutorPrompt(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	doc, err := documentArg(ws, args)
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	registry, err := ctx.Tutors()
	if err != nil {
		return err
	}
	name := tutorName
	if name == "" {
		name = settings.Tutor.Default
	}
	tutor, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s. Run 'langotango tutor list' to see the tutors", tutors.ErrTutorNotFound, name)
	}

	prompt, err := tutors.BuildPrompt(tutor, doc.PlainText(), settings.Tutor.ExcerptLength)
	if err != nil {
		return err
	}

	out := PromptOutput{
		Tutor:    tutor.Name,
		Server:   settings.Tutor.Server,
		Model:    settings.Tutor.Model,
		Document: ws.PathOf(doc),
	}
	if settings.Tutor.Server == "lmstudio" {
		out.System, out.User = prompt.System, prompt.User
		out.Tokens = utils.EstimateTokens(prompt.System + "\n" + prompt.User)
	} else {
		out.Prompt = prompt.Combined
		out.Tokens = utils.EstimateTokens(prompt.Combined)
	}

	switch f := outputFormat(cmd); f {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), f, out)
	}

	w := cmd.OutOrStdout()
	if out.Prompt != "" {
		fmt.Fprintln(w, out.Prompt)
	} else {
		fmt.Fprintf(w, "[system]\n%s\n\n[user]\n%s\n", out.System, out.User)
	}
	cli.PrintInfo("%s for %s", utils.FormatTokenCount(out.Tokens), cli.ColorizeTutor(tutor.Name))
	return nil
}
