package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// IngestConfig mirrors the ingest command flags. Zero values mean "not set".
type IngestConfig struct {
	Year            int               `yaml:"year,omitempty"`
	Month           int               `yaml:"month,omitempty"`
	Color           string            `yaml:"color,omitempty"`
	URLPrefix       string            `yaml:"url_prefix,omitempty"`
	Source          string            `yaml:"source,omitempty"`
	ChunkSize       int               `yaml:"chunk_size,omitempty"`
	Table           string            `yaml:"table,omitempty"`
	IndexColumn     *string           `yaml:"index_column,omitempty"`
	Columns         map[string]string `yaml:"columns,omitempty"`
	TimestampLayout string            `yaml:"timestamp_layout,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "tripload.yaml"

func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ColumnTypes parses the ingest.columns section.
func (c *ProjectConfig) ColumnTypes() (map[string]tripload.ColumnType, error) {
	if c == nil || len(c.Ingest.Columns) == 0 {
		return nil, nil
	}
	types := make(map[string]tripload.ColumnType, len(c.Ingest.Columns))
	for name, typeName := range c.Ingest.Columns {
		typ, err := tripload.ParseColumnType(typeName)
		if err != nil {
			return nil, fmt.Errorf("%s: ingest.columns.%s: %w", ConfigFileName, name, err)
		}
		types[name] = typ
	}
	return types, nil
}

// ParsedTimeout returns the timeout setting, or zero when unset.
func (c *ProjectConfig) ParsedTimeout() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout in %s: %v: %w", ConfigFileName, err, tripload.ErrInvalidConfig)
	}
	return d, nil
}
