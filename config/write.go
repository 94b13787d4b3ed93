package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/xaionaro-go/datacounter"
)

var _ io.WriterTo = (*Config)(nil)

func (cfg Config) Bytes() ([]byte, error) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal the config: %w", err)
	}
	return b, nil
}

func (cfg Config) WriteTo(
	w io.Writer,
) (int64, error) {
	b, err := cfg.Bytes()
	if err != nil {
		return 0, err
	}

	counter := datacounter.NewWriterCounter(w)
	_, err = io.Copy(counter, bytes.NewReader(b))
	return int64(counter.Count()), err
}
