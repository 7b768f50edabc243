package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newCommentCmd creates the comment command.
func newCommentCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <file> <section> <key>",
		Short: "Disable a key by commenting it out",
		Long: `Disable a key by prefixing its line with ';'.

The entry stops being read but stays in the file, so "inictl uncomment"
can restore it. Commenting a key that is not set does nothing.

Examples:
  inictl comment app.ini database password`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(provider, args[0], sectionArg(args[1]), args[2], false)
		},
	}

	return cmd
}

// newUncommentCmd creates the uncomment command.
func newUncommentCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncomment <file> <section> <key>",
		Short: "Restore a commented-out key",
		Long: `Restore a key that was disabled with "inictl comment" or by hand.

The first commented line of the section whose key matches is restored. If
the key is already set, or no commented line matches, nothing changes.

Examples:
  inictl uncomment app.ini database password`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(provider, args[0], sectionArg(args[1]), args[2], true)
		},
	}

	return cmd
}

// runToggle comments or uncomments key and stores the file if it changed.
func runToggle(provider *AppProvider, path, section, key string, restore bool) error {
	app, err := provider.Get()
	if err != nil {
		return err
	}

	f, err := app.openINI(path, false)
	if err != nil {
		return err
	}

	_, wasSet := f.Value(section, key)
	if restore {
		err = f.UncommentVariable(section, key)
	} else {
		err = f.CommentVariable(section, key)
	}
	if err != nil {
		return err
	}
	value, isSet := f.Value(section, key)
	changed := wasSet != isSet

	if changed {
		if err := f.Store(path); err != nil {
			return err
		}
	}

	action := "commented"
	if restore {
		action = "uncommented"
	}

	if app.JSON {
		result := map[string]interface{}{
			"file":    path,
			"section": section,
			"key":     key,
			"changed": changed,
			"status":  action,
		}
		if isSet {
			result["value"] = value
		}
		return json.NewEncoder(app.Out).Encode(result)
	}

	switch {
	case changed && restore:
		fmt.Fprintf(app.Out, "%s Uncommented %s %s = %s\n", app.SuccessColor("✓"), sectionLabel(section), key, value)
	case changed:
		fmt.Fprintf(app.Out, "%s Commented out %s %s\n", app.SuccessColor("✓"), sectionLabel(section), key)
	case restore && wasSet:
		fmt.Fprintf(app.Out, "%s %s %s is already set\n", app.WarnColor("!"), sectionLabel(section), key)
	default:
		fmt.Fprintf(app.Out, "%s No %s entry for %s %s\n", app.WarnColor("!"), nothingTo(restore), sectionLabel(section), key)
	}
	return nil
}

func nothingTo(restore bool) string {
	if restore {
		return "commented"
	}
	return "active"
}
