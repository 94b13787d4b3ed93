package config

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

var _ io.Reader = (*Config)(nil)
var _ io.ReaderFrom = (*Config)(nil)

// Read parses b on top of the current values, so unset fields keep them.
func (cfg *Config) Read(
	b []byte,
) (int, error) {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return len(b), fmt.Errorf("unable to unmarshal the config: %w", err)
	}
	return len(b), nil
}

func (cfg *Config) ReadFrom(
	r io.Reader,
) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return int64(len(b)), fmt.Errorf("unable to read: %w", err)
	}

	n, err := cfg.Read(b)
	return int64(n), err
}
