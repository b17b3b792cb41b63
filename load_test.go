package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		config string
		env    string
		err    error
		check  func(Configuration) bool
	}{
		"defaults": {
			config: `{}`,
			check: func(c Configuration) bool {
				return c.MaxSkinScale == 4 && c.ConvertIcons && c.Portraits.Large == 512 && c.Socket == DEFAULT_SOCKET
			},
		},
		"partial": {
			config: `{"skin_dir": "/srv/skins", "convert_icons": false, "portraits": {"small": 64}}`,
			check: func(c Configuration) bool {
				return c.SkinDir == "/srv/skins" && !c.ConvertIcons && c.Portraits.Small == 64 && c.Portraits.Medium == 256
			},
		},
		"env_level": {
			config: `{"log_level": "info"}`,
			env:    "trace",
			check:  func(c Configuration) bool { return c.LogLevel == "trace" },
		},
		"bad_scale":  {config: `{"max_skin_scale": -1}`, err: ErrInvalidConfig},
		"bad_size":   {config: `{"portraits": {"large": 0}}`, err: ErrInvalidConfig},
		"no_listen":  {config: `{"listen": ""}`, err: ErrInvalidConfig},
		"huge_scale": {config: `{"max_skin_scale": 512}`, err: ErrInvalidConfig},
		"huge_size":  {config: `{"portraits": {"medium": 65536}}`, err: ErrInvalidConfig},
	}

	for name, test := range tests {
		t.Setenv("SKINSWAP_LOG_LEVEL", test.env)

		cf := filepath.Join(dir, name+".json")
		if err := os.WriteFile(cf, []byte(test.config), 0644); err != nil {
			t.Fatal(err)
		}

		c, err := load_config(cf)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Fatalf("%s: expected %q, got %v", name, test.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !test.check(c) {
			t.Fatalf("%s: unexpected config %+v", name, c)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := load_config(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not exist error, got %v", err)
	}

	cf := filepath.Join(dir, "broken.json")
	os.WriteFile(cf, []byte(`{"listen": `), 0644)
	if _, err := load_config(cf); err == nil {
		t.Fatalf("broken json loaded")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]hclog.Level{
		"trace":   hclog.Trace,
		"DEBUG":   hclog.Debug,
		"warn":    hclog.Warn,
		"":        hclog.Info,
		"chatty!": hclog.Info,
	}

	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("%q: got %v, expected %v", in, got, want)
		}
	}
}

func TestSkinPath(t *testing.T) {
	c := defaultConfig()
	c.SkinDir = "/srv/skins"

	tests := map[string]string{
		"":             "",
		"a.png":        "/srv/skins/a.png",
		"steve/a.png":  "/srv/skins/steve/a.png",
		"/tmp/b.png":   "/tmp/b.png",
		"../other.png": "/srv/other.png",
	}

	for in, want := range tests {
		if got := c.skinPath(in); got != want {
			t.Fatalf("%q: got %q, expected %q", in, got, want)
		}
	}
}
