package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ini-lite/internal/ini"
	"ini-lite/internal/log"
	"ini-lite/internal/settings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newImportCmd creates the import command.
func newImportCmd(provider *AppProvider) *cobra.Command {
	var (
		from   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "import <file> <section> --from <settings-file>",
		Short: "Copy flat settings from YAML, TOML or JSON into a section",
		Long: `Write every key of a flat YAML, TOML or JSON document into one
section of an INI file, creating the file and section as needed.

Existing keys are updated in place; other keys, comments and sections are
left alone. Scalar values are written as text; nested maps and lists are
rejected. The input format is taken from the file extension unless
--format is given.

Examples:
  inictl import app.ini database --from db.yaml
  inictl import app.ini - --from top.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if format == "" {
				if format, err = formatFromPath(from); err != nil {
					return err
				}
			}
			s, err := readSettings(from, strings.ToLower(format))
			if err != nil {
				return err
			}

			path, section := args[0], sectionArg(args[1])
			opts := []ini.Option{ini.WithLogger(log.WithComponent(app.Log, "ini"))}
			if err := ini.StoreSettings(s, section, path, opts...); err != nil {
				return err
			}

			if app.JSON {
				result := map[string]interface{}{
					"file":    path,
					"section": section,
					"keys":    s.Keys(),
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			fmt.Fprintf(app.Out, "%s Imported %d key(s) into %s of %s\n",
				app.SuccessColor("✓"), s.Len(), sectionLabel(section), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Settings file to import (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: yaml, toml or json")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// readSettings decodes a flat document from path into Settings.
func readSettings(path, format string) (*settings.Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]interface{}
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(raw), &doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		err = dec.Decode(&doc)
	default:
		return nil, fmt.Errorf("unknown format %q (valid: %s, %s, %s)", format, FormatYAML, FormatTOML, FormatJSON)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	s := settings.New()
	for k, v := range doc {
		text, err := scalarText(v)
		if err != nil {
			return nil, fmt.Errorf("%s: key %q: %w", path, k, err)
		}
		s.Set(k, text)
	}
	return s, nil
}

// scalarText renders a decoded scalar as INI value text.
func scalarText(v interface{}) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	case map[string]interface{}, []interface{}, []map[string]interface{}:
		return "", fmt.Errorf("nested values are not supported")
	default:
		return fmt.Sprint(v), nil
	}
}
