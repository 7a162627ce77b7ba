package domain

// Config represents the wire configuration loaded from wire.yaml.
type Config struct {
	Profile string
	Schema  SchemaConfig
	Paths   PathsConfig
}

type SchemaConfig struct {
	// Roots are directories or archives holding .proto files.
	Roots   []string
	Include []string
	Exclude []string
}

type PathsConfig struct {
	LogsDir string
}

// DefaultConfig provides sane defaults if wire.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Profile: "android",
		Schema: SchemaConfig{
			Roots:   []string{"."},
			Include: []string{"**/*.proto"},
		},
		Paths: PathsConfig{
			LogsDir: ".wire/logs",
		},
	}
}
