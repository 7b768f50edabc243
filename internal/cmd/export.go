package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ini-lite/internal/config"
	"ini-lite/internal/ini"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Structured formats for export and import.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// newExportCmd creates the export command.
func newExportCmd(provider *AppProvider) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert an INI file to YAML, TOML or JSON",
		Long: `Print the parsed contents of an INI file in a structured format.

Keys of the unnamed section become top-level keys; every other section
becomes a nested map. All values are strings. The default format comes
from the export.format preference.

Examples:
  inictl export app.ini
  inictl export app.ini --format toml > app.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if format == "" {
				format = FormatYAML
				if app.JSON {
					format = FormatJSON
				} else if v, ok := app.ConfigStore.Get(config.KeyExportFormat); ok {
					format = v
				}
			}

			f, err := app.openINI(args[0], false)
			if err != nil {
				return err
			}

			tree, err := exportTree(f)
			if err != nil {
				return err
			}
			return encodeTree(app.Out, strings.ToLower(format), tree)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml, toml or json")

	return cmd
}

// exportTree shapes the section table for structured encoders.
func exportTree(f *ini.File) (map[string]interface{}, error) {
	table := f.Map()
	tree := make(map[string]interface{})
	for k, v := range table[ini.NullSectionName] {
		tree[k] = v
	}
	for _, name := range f.Sections() {
		if name == ini.NullSectionName {
			continue
		}
		if _, clash := tree[name]; clash {
			return nil, fmt.Errorf("section [%s] has the same name as a key of the unnamed section", name)
		}
		tree[name] = table[name]
	}
	return tree, nil
}

func encodeTree(w io.Writer, format string, tree map[string]interface{}) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tree); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		return fmt.Errorf("unknown format %q (valid: %s, %s, %s)", format, FormatYAML, FormatTOML, FormatJSON)
	}
}

// formatFromPath infers a structured format from a file extension.
func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("cannot tell the format of %s; use --format", path)
}
