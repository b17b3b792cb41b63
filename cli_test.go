package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommands(t *testing.T) {
	e, dir := testEnv(t)
	writeSkin(t, dir, "red.png", 128, 64)
	writeSkin(t, dir, "my  skin.png", 64, 64)
	out := filepath.Join(dir, "icon.bntx")
	c := e.commands()

	tests := []struct {
		req  string
		want string
	}{
		{"", "ok"},
		{"bogus 1", "unknown command bogus"},
		{"select 0", SELECT_USAGE},
		{"select x red.png", "x is not a slot number"},
		{"select 8 red.png", "invalid slot index"},
		{"select 0 missing.png", "warning"},
		{"select 0 red.png", "selected " + filepath.Join(dir, "red.png") + " for slot 0"},
		{"status", "0 selected"},
		{"ids chara_6", "ids: 8 ids"},
		{"gen ui/replace_patch/chara/chara_2/chara_2_pikel_00.bntx " + out, "did you mean ui/replace_patch/chara/chara_2/chara_2_pickel_00.bntx"},
		{"gen ui/replace_patch/chara/chara_2/chara_2_pickel_00.bntx " + out, "wrote 16512 bytes"},
		{"status", "0 rendered"},
		{"gen ui/replace_patch/chara/chara_2/chara_2_pickel_01.bntx " + out, "no image selected"},
		{"clear 0", "cleared slot 0"},
		{"clear", CLEAR_USAGE},
		{"reset", "reset: ok"},
		{"reload", RELOAD_USAGE},
		{"select  1   my  skin.png", "selected " + filepath.Join(dir, "my  skin.png") + " for slot 1"},
	}

	for _, test := range tests {
		if got := c.run(test.req); !strings.Contains(got, test.want) {
			t.Fatalf("%q: got %q, expected it to contain %q", test.req, got, test.want)
		}
	}

	if fi, err := os.Stat(out); err != nil || fi.Size() != 64*64*4+0x80 {
		t.Fatalf("gen output: %v %v", fi, err)
	}
}

func TestReload(t *testing.T) {
	e, dir := testEnv(t)
	c := e.commands()

	tests := []struct {
		config string
		want   string
		level  string
	}{
		{`{"log_level": "debug"}`, "reload: ok (", "debug"},
		{`{"log_level": "warn", "skin_dir": "` + dir + `"}`, "reload: ok (", "warn"},
		{`{"max_skin_scale": 0}`, "internal error", "warn"},
		{`{"max_skin_scale": 2, "skin_dir": "` + dir + `"}`, "restart to apply content", "info"},
	}

	for i, test := range tests {
		if err := os.WriteFile(e.cf, []byte(test.config), 0644); err != nil {
			t.Fatal(err)
		}
		if got := c.run("reload config"); !strings.Contains(got, test.want) {
			t.Fatalf("%d: got %q, expected %q", i, got, test.want)
		}
		if got := e.config().LogLevel; got != test.level {
			t.Fatalf("%d: log level %s, expected %s", i, got, test.level)
		}
	}
}
