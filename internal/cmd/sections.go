package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newSectionsCmd creates the sections command.
func newSectionsCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "List the sections of an INI file",
		Long: `List section names in the order they first appear.

The unnamed section, holding keys above the first header, is listed only
when it has keys.

Examples:
  inictl sections app.ini
  inictl sections app.ini --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			f, err := app.openINI(args[0], false)
			if err != nil {
				return err
			}

			names := make([]string, 0)
			table := f.Map()
			for _, name := range f.Sections() {
				if name == "" && len(table[name]) == 0 {
					continue
				}
				names = append(names, name)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(names)
			}

			for _, name := range names {
				fmt.Fprintln(app.Out, sectionLabel(name))
			}
			return nil
		},
	}

	return cmd
}
