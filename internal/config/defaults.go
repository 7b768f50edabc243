package config

// Preference keys understood by inictl.
const (
	KeyOutputJSON   = "output.json"
	KeyOutputColor  = "output.color"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyExportFormat = "export.format"
)

// DefaultValues returns the default preference map.
func DefaultValues() map[string]string {
	return map[string]string{
		KeyOutputJSON:   "false",
		KeyOutputColor:  "auto",
		KeyLogLevel:     "warn",
		KeyLogFormat:    "console",
		KeyExportFormat: "yaml",
	}
}

// ApplyDefaults fills any missing keys in s with their default values in
// memory. Defaults are never written to the preferences file.
func ApplyDefaults(s Store) {
	all := s.All()
	for k, v := range DefaultValues() {
		if _, exists := all[k]; !exists {
			s.SetInMemory(k, v)
		}
	}
}
