package commands

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/files"
	"github.com/shokunin/langotango/pkg/models"
)

// NewSettingsCommand creates the settings command group
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long: `Show or change the settings stored in settings.yaml.

Keys are written as section.name, for example project.autosave_seconds or
tutor.default.

Examples:
  langotango settings show
  langotango settings set tutor.default Korean
  langotango settings set project.autosave_seconds 0`,
	}

	cmd.AddCommand(newSettingsShowCommand())
	cmd.AddCommand(newSettingsSetCommand())
	cmd.AddCommand(newSettingsPathCommand())

	return cmd
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext(cmd)
			if err != nil {
				return err
			}
			settings := ctx.LoadSettingsWithDefault()

			switch f := outputFormat(cmd); f {
			case "json", "yaml":
				return cli.OutputResults(cmd.OutOrStdout(), f, settings)
			}

			flat, err := flattenSettings(settings)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(flat))
			for k := range flat {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("KEY", "VALUE")
			for _, k := range keys {
				table.Row(k, fmt.Sprint(flat[k]))
			}
			table.Flush()
			return nil
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext(cmd)
			if err != nil {
				return err
			}
			settings, err := setSetting(ctx.LoadSettingsWithDefault(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := files.WriteSettings(settings); err != nil {
				return err
			}
			cli.PrintSuccess("Set %s to %s", args[0], args[1])
			return nil
		},
	}
}

func newSettingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where settings and custom tutors are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsPath, err := files.SettingsPath()
			if err != nil {
				return err
			}
			tutorsPath, err := files.TutorsPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), settingsPath)
			fmt.Fprintln(cmd.OutOrStdout(), tutorsPath)
			return nil
		},
	}
}

func settingsMap(settings *models.Settings) (map[string]interface{}, error) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return m, nil
}

// flattenSettings maps section.name keys to their values
func flattenSettings(settings *models.Settings) (map[string]interface{}, error) {
	m, err := settingsMap(settings)
	if err != nil {
		return nil, err
	}
	flat := map[string]interface{}{}
	for section, v := range m {
		fields, ok := v.(map[string]interface{})
		if !ok {
			flat[section] = v
			continue
		}
		for name, value := range fields {
			flat[section+"."+name] = value
		}
	}
	return flat, nil
}

// setSetting returns a copy of settings with one section.name key changed.
// The value is parsed as YAML, so "true" and "60" keep their types.
func setSetting(settings *models.Settings, key, value string) (*models.Settings, error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return nil, fmt.Errorf("invalid key '%s': use section.name, e.g. tutor.default", key)
	}

	m, err := settingsMap(settings)
	if err != nil {
		return nil, err
	}
	fields, ok := m[section].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unknown settings section '%s'", section)
	}
	if _, ok := fields[name]; !ok {
		return nil, fmt.Errorf("unknown setting '%s'", key)
	}

	var parsed interface{}
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil || parsed == nil {
		parsed = value
	}
	fields[name] = parsed

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	updated := models.DefaultSettings()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(updated); err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return updated, nil
}
