package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	DatabasePath  string     `toml:"database_path"`
	RequestsTable string     `toml:"requests_table"`
	LogLevel      string     `toml:"log_level"`
	LogFormat     string     `toml:"log_format"`
	MetricsAddr   string     `toml:"metrics_addr"`
	Report        FileReport `toml:"report"`
}

// FileReport is the [report] table of the config file.
type FileReport struct {
	Services     []string `toml:"services"`
	Strict       *bool    `toml:"strict"`
	AllowedChats []int64  `toml:"allowed_chats"`
}

// LoadFile loads configuration from the TOML file at path.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
