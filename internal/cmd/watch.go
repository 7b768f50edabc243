package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"ini-lite/internal/ini"
	"ini-lite/internal/log"
	"ini-lite/internal/watch"

	"github.com/spf13/cobra"
)

// newWatchCmd creates the watch command.
func newWatchCmd(provider *AppProvider) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file> <section> <key>",
		Short: "Print a key's value whenever it changes",
		Long: `Print the value of a key, then print it again each time the file
changes it, until interrupted.

Editors and tools that replace the file by renaming a new copy over it are
followed. A file that fails to parse is reported on stderr and watching
continues.

Examples:
  inictl watch app.ini features cache
  inictl watch app.ini database host --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			path, section, key := args[0], sectionArg(args[1]), args[2]
			if _, err := app.openINI(path, false); err != nil {
				return err
			}

			w := watch.New(path,
				watch.WithDebounce(debounce),
				watch.WithLogger(log.WithComponent(app.Log, "watch")),
				watch.WithINIOptions(ini.WithLogger(log.WithComponent(app.Log, "ini"))),
			)

			var (
				last    string
				lastSet bool
				started bool
			)
			return w.Run(cmd.Context(), func(f *ini.File, err error) {
				if err != nil {
					fmt.Fprintf(app.Err, "%s %v\n", app.WarnColor("!"), err)
					return
				}
				value, ok := f.Value(section, key)
				if started && value == last && ok == lastSet {
					return
				}
				started, last, lastSet = true, value, ok

				if app.JSON {
					_ = json.NewEncoder(app.Out).Encode(map[string]interface{}{
						"section": section,
						"key":     key,
						"value":   value,
						"set":     ok,
					})
					return
				}
				if ok {
					fmt.Fprintln(app.Out, value)
				} else {
					fmt.Fprintf(app.Out, "%s (not set)\n", key)
				}
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-reading the file")

	return cmd
}
