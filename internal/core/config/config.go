package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const FileName = "datafetch.toml"

const DefaultSourceURL = "https://raw.githubusercontent.com/ageron/handson-ml2/master/datasets/housing/housing.tgz"

var DefaultDestination = filepath.Join("data", "housing")

// Config represents the structure of the datafetch.toml file.
type Config struct {
	Source      Source      `toml:"source"`
	Destination Destination `toml:"destination"`
}

// Source holds the archive locator, an http(s) URL or github:owner/repo/path@ref.
type Source struct {
	URL string `toml:"url"`
}

// Destination holds the directory the archive is extracted into.
type Destination struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no datafetch.toml is present.
func Default() *Config {
	return &Config{
		Source:      Source{URL: DefaultSourceURL},
		Destination: Destination{Path: DefaultDestination},
	}
}

// Load reads datafetch.toml from dirPath.
// If the file doesn't exist, it returns Default(). Fields left empty in the file
// fall back to their defaults.
func Load(dirPath string) (*Config, error) {
	fullPath := filepath.Join(dirPath, FileName)
	cfg := Default()

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config %s: %w", fullPath, err)
	}

	var fromFile Config
	if _, err := toml.DecodeFile(fullPath, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", fullPath, err)
	}
	if fromFile.Source.URL != "" {
		cfg.Source.URL = fromFile.Source.URL
	}
	if fromFile.Destination.Path != "" {
		cfg.Destination.Path = fromFile.Destination.Path
	}
	return cfg, nil
}

// Write marshals cfg and writes it to datafetch.toml in dirPath.
// It will overwrite the file if it already exists.
func Write(dirPath string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fullPath := filepath.Join(dirPath, FileName)
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(buf.Bytes())
	return err
}
