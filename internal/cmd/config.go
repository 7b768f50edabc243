package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"ini-lite/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage inictl preferences",
		Long: `Manage inictl's own preferences.

Preferences live in an INI file (see --config) and are addressed as
"section.key". Known keys:

  output.json    true | false           JSON output by default
  output.color   auto | always | never  ANSI colour
  log.level      trace ... error        diagnostic logging on stderr
  log.format     console | json         diagnostic log line format
  export.format  yaml | toml | json     default for "inictl export"

Subcommands:
  get       Get a preference value
  set       Set a preference value
  list      List all preference values
  unset     Comment a preference out
  validate  Validate preferences`,
	}

	cmd.AddCommand(newConfigGetCmd(provider))
	cmd.AddCommand(newConfigSetCmd(provider))
	cmd.AddCommand(newConfigListCmd(provider))
	cmd.AddCommand(newConfigUnsetCmd(provider))
	cmd.AddCommand(newConfigValidateCmd(provider))

	return cmd
}

// newConfigGetCmd creates the "config get" subcommand.
func newConfigGetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a preference value",
		Long: `Get the effective value of a preference key.

Prints the bare value if the key is set, or "key (not set)" if missing.
Defaults and environment overrides are included.

Examples:
  inictl config get export.format
  inictl config get log.level`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := app.ConfigStore.Get(key)

			if app.JSON {
				result := map[string]interface{}{
					"key":   key,
					"value": value,
					"set":   ok,
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			if ok {
				fmt.Fprintln(app.Out, value)
			} else {
				fmt.Fprintf(app.Out, "%s (not set)\n", key)
			}
			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the "config set" subcommand.
func newConfigSetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference value",
		Long: `Set a preference key to a value and save it.

Comments in the preferences file are kept. Setting a key that was unset
restores its commented-out line.

Examples:
  inictl config set export.format toml
  inictl config set output.color never`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			value := args[1]

			if err := app.ConfigStore.Set(key, value); err != nil {
				return fmt.Errorf("setting config: %w", err)
			}

			if app.JSON {
				result := map[string]string{
					"key":    key,
					"value":  value,
					"status": "set",
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}

// newConfigListCmd creates the "config list" subcommand.
func newConfigListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all preference values",
		Long: `List all effective preference key-value pairs.

Entries are sorted alphabetically by key.

Examples:
  inictl config list
  inictl config list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			all := app.ConfigStore.All()

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(all)
			}

			if len(all) == 0 {
				fmt.Fprintln(app.Out, "No configuration set")
				return nil
			}

			fmt.Fprintln(app.Out, "Configuration:")
			for _, k := range sortedKeys(all) {
				fmt.Fprintf(app.Out, "  %s = %s\n", k, all[k])
			}
			return nil
		},
	}

	return cmd
}

// newConfigUnsetCmd creates the "config unset" subcommand.
func newConfigUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Comment a preference out",
		Long: `Disable a preference key by commenting out its line.

The default value applies again on the next run. Unsetting a key that is
not set does nothing.

Examples:
  inictl config unset export.format`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]

			if err := app.ConfigStore.Unset(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if app.JSON {
				result := map[string]string{
					"key":    key,
					"status": "unset",
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			fmt.Fprintf(app.Out, "Unset %s\n", key)
			return nil
		},
	}

	return cmd
}

// newConfigValidateCmd creates the "config validate" subcommand.
func newConfigValidateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate preferences",
		Long: `Validate the current preferences.

Checks that known keys have valid values. Unknown keys are always
accepted.

Examples:
  inictl config validate
  inictl config validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			issues := make([]string, 0)
			if err := config.Validate(app.ConfigStore); err != nil {
				var verr *config.ValidationError
				if !errors.As(err, &verr) {
					return err
				}
				issues = verr.Issues
			}

			if app.JSON {
				result := map[string]interface{}{
					"valid":  len(issues) == 0,
					"issues": issues,
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			if len(issues) == 0 {
				fmt.Fprintln(app.Out, "Configuration is valid.")
				return nil
			}

			fmt.Fprintln(app.Out, "Configuration errors:")
			for _, e := range issues {
				fmt.Fprintf(app.Out, "  %s\n", e)
			}
			return fmt.Errorf("configuration has %d error(s)", len(issues))
		},
	}

	return cmd
}

// sortedKeys returns the sorted keys of a map.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

