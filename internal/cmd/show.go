package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newShowCmd creates the show command.
func newShowCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file> [section]",
		Short: "Show the parsed contents of an INI file",
		Long: `Show what inictl reads from an INI file.

Without a section, every section is printed as its header followed by its
keys, indented and sorted. Comments and commented-out entries are not
shown. With a section, only that section's keys are printed.

Examples:
  inictl show app.ini
  inictl show app.ini database
  inictl show app.ini database --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			f, err := app.openINI(args[0], false)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if app.JSON {
					return json.NewEncoder(app.Out).Encode(f.Map())
				}
				fmt.Fprint(app.Out, f.String())
				return nil
			}

			section := sectionArg(args[1])
			s, ok := f.SectionSettings(section)
			if !ok {
				return fmt.Errorf("section %s not found in %s", sectionLabel(section), args[0])
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(s.Map())
			}
			for _, k := range s.Keys() {
				v, _ := s.Get(k)
				fmt.Fprintf(app.Out, "%s=%s\n", k, v)
			}
			return nil
		},
	}

	return cmd
}
