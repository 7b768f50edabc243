package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"ini-lite/internal/ini"

	"github.com/spf13/cobra"
)

// newSetCmd creates the set command.
func newSetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <section> <key> <value>",
		Short: "Set the value of a key",
		Long: `Set a key in an INI file, creating the file if it does not exist.

An existing line is rewritten in place and keeps its trailing comment. A
commented-out entry for the key is restored rather than duplicated. A new
key is added at the end of its section; a new section is appended to the
end of the file.

Examples:
  inictl set app.ini database host db.internal
  inictl set app.ini - name "my app"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, value := sectionArg(args[1]), args[2], args[3]
			return runEdit(provider, args[0], section, key, func(f *ini.File) error {
				return f.SetValue(section, key, value)
			})
		},
	}

	return cmd
}

// newEnableCmd creates the enable command.
func newEnableCmd(provider *AppProvider) *cobra.Command {
	return newBoolCmd(provider, "enable", true)
}

// newDisableCmd creates the disable command.
func newDisableCmd(provider *AppProvider) *cobra.Command {
	return newBoolCmd(provider, "disable", false)
}

func newBoolCmd(provider *AppProvider, name string, enabled bool) *cobra.Command {
	value := strconv.FormatBool(enabled)
	cmd := &cobra.Command{
		Use:   name + " <file> <section> <key>",
		Short: fmt.Sprintf("Set a key to %s", value),
		Long: fmt.Sprintf(`Set a boolean key to %q.

Examples:
  inictl %s app.ini features cache`, value, name),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key := sectionArg(args[1]), args[2]
			return runEdit(provider, args[0], section, key, func(f *ini.File) error {
				return f.SetEnabled(section, key, enabled)
			})
		},
	}

	return cmd
}

// runEdit applies edit to the INI file at path, stores it and reports the
// resulting value of key.
func runEdit(provider *AppProvider, path, section, key string, edit func(*ini.File) error) error {
	app, err := provider.Get()
	if err != nil {
		return err
	}

	f, err := app.openINI(path, true)
	if err != nil {
		return err
	}
	if err := edit(f); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := f.Store(path); err != nil {
		return err
	}
	value, _ := f.Value(section, key)

	if app.JSON {
		result := map[string]string{
			"file":    path,
			"section": section,
			"key":     key,
			"value":   value,
			"status":  "set",
		}
		return json.NewEncoder(app.Out).Encode(result)
	}

	fmt.Fprintf(app.Out, "%s Set %s %s = %s\n", app.SuccessColor("✓"), sectionLabel(section), key, value)
	return nil
}
