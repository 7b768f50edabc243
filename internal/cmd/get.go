package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newGetCmd creates the get command.
func newGetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <section> <key>",
		Short: "Print the value of a key",
		Long: `Print the value of a key in an INI file.

Prints the bare value if the key is set, or "key (not set)" if it is
missing or commented out. Section and key names are matched ignoring case.

Examples:
  inictl get app.ini database host
  inictl get app.ini - name          # key above the first [section]
  inictl get app.ini database port --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			f, err := app.openINI(args[0], false)
			if err != nil {
				return err
			}

			section, key := sectionArg(args[1]), args[2]
			value, ok := f.Value(section, key)

			if app.JSON {
				result := map[string]interface{}{
					"file":    args[0],
					"section": section,
					"key":     key,
					"value":   value,
					"set":     ok,
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
