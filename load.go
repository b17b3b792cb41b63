package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"floc/skinswap/pipeline"
)

const (
	DEFAULT_CONFIG = "config.json"
	DEFAULT_SOCKET = "/tmp/skinswap.sock"

	// content capacities are 32 bit on the wire
	MAX_SKIN_SCALE = 64
	MAX_PORTRAIT   = 4096
)

func defaultConfig() Configuration {
	c := Configuration{
		Listen:       "127.0.0.1:9080",
		Socket:       DEFAULT_SOCKET,
		SkinDir:      ".",
		LogLevel:     "info",
		MaxSkinScale: 4,
		ConvertIcons: true,
	}
	c.Portraits.Small = 128
	c.Portraits.Medium = 256
	c.Portraits.Large = 512

	return c
}

// config file to use; only the first argument is looked at
func configFile(l hclog.Logger) string {
	if len(os.Args) < 2 {
		return DEFAULT_CONFIG
	}
	if len(os.Args) > 2 {
		l.Warn("extra arguments were passed; only the first arg specifies config file, rest are ignored")
	}
	return os.Args[1]
}

// Load config file. fields missing from the file keep their defaults and
// SKINSWAP_LOG_LEVEL overrides log_level
func load_config(cf string) (Configuration, error) {
	cnf := defaultConfig()

	cb, err := os.ReadFile(cf)
	if err != nil {
		return cnf, err
	}
	if err := json.Unmarshal(cb, &cnf); err != nil {
		return cnf, fmt.Errorf("%s: %w", cf, err)
	}

	if lvl := os.Getenv("SKINSWAP_LOG_LEVEL"); lvl != "" {
		cnf.LogLevel = lvl
	}

	return cnf, cnf.validate()
}

func (c Configuration) validate() error {
	switch {
	case c.Listen == "":
		return fmt.Errorf("%w: listen is empty", ErrInvalidConfig)
	case c.Socket == "":
		return fmt.Errorf("%w: socket is empty", ErrInvalidConfig)
	case c.MaxSkinScale < 1 || c.MaxSkinScale > MAX_SKIN_SCALE:
		return fmt.Errorf("%w: max_skin_scale %d not in [1, %d]", ErrInvalidConfig, c.MaxSkinScale, MAX_SKIN_SCALE)
	case c.Portraits.Small < 1 || c.Portraits.Medium < 1 || c.Portraits.Large < 1:
		return fmt.Errorf("%w: portrait sizes must be positive", ErrInvalidConfig)
	case c.Portraits.Small > MAX_PORTRAIT || c.Portraits.Medium > MAX_PORTRAIT || c.Portraits.Large > MAX_PORTRAIT:
		return fmt.Errorf("%w: portrait sizes must not exceed %d", ErrInvalidConfig, MAX_PORTRAIT)
	}
	return nil
}

// sizes of the content table; changing them needs a restart since the host
// only learns capacities at registration
func (c Configuration) sizes() pipeline.Sizes {
	return pipeline.Sizes{
		MaxScale: c.MaxSkinScale,
		Small:    c.Portraits.Small,
		Medium:   c.Portraits.Medium,
		Large:    c.Portraits.Large,
	}
}

// relative selections are looked up in skin_dir
func (c Configuration) skinPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.SkinDir, p)
}
