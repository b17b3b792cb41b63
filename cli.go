package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

const (
	SELECT_USAGE string = "usage: select SLOT PATH"
	CLEAR_USAGE  string = "usage: clear SLOT"
	GEN_USAGE    string = "usage: gen PATH|ID OUTFILE"
	RELOAD_USAGE string = "usage: reload config"
)

// cli handlers
//
// These should all follow the cmdHandlerFunc type (func([]string, string) string).
// line is the request with the command name cut off and its spacing intact.

func (e *env) commands() cmdHandler {
	c := newCmdHandler()
	c.register("select", e.selectCmd)
	c.register("clear", e.clearCmd)
	c.register("status", e.status)
	c.register("reset", e.reset)
	c.register("ids", e.ids)
	c.register("gen", e.gen)
	c.register("reload", e.reload)
	return c
}

func parseSlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s is not a slot number", s)
	}
	return n, nil
}

// select a source image for a slot; the path may contain spaces
func (e *env) selectCmd(args []string, line string) string {
	if len(args) < 2 {
		return SELECT_USAGE
	}

	n, err := parseSlot(args[0])
	if err != nil {
		return err.Error()
	}

	// everything after the slot number, runs of spaces included
	path := strings.TrimLeftFunc(line, unicode.IsSpace)[len(args[0]):]
	p, err := e.selectSlot(n, strings.TrimLeftFunc(path, unicode.IsSpace))
	if err != nil {
		return err.Error()
	}
	if _, err := os.Stat(p); err != nil {
		return fmt.Sprintf("selected %s for slot %d (warning: %v)", p, n, err)
	}
	return fmt.Sprintf("selected %s for slot %d", p, n)
}

func (e *env) clearCmd(args []string, _ string) string {
	if len(args) != 1 {
		return CLEAR_USAGE
	}

	n, err := parseSlot(args[0])
	if err != nil {
		return err.Error()
	}
	if err := e.pipe.Store().Clear(n); err != nil {
		return err.Error()
	}

	e.log.Info("slot cleared", "slot", n)
	return fmt.Sprintf("cleared slot %d", n)
}

func (e *env) status(args []string, _ string) string {
	var b strings.Builder
	for _, i := range e.pipe.Store().Snapshot() {
		fmt.Fprintf(&b, "\n%d %-8s %s", i.Slot, i.State, i.Path)
	}
	return fmt.Sprintf("%d slots%s", len(e.pipe.Store().Snapshot()), b.String())
}

// forget the last prompted content so the next texture request prompts again
func (e *env) reset(args []string, _ string) string {
	e.pipe.Store().ResetAll()
	return "ok"
}

// list content ids, optionally only the ones whose path or kind contains a filter
func (e *env) ids(args []string, _ string) string {
	t := e.pipe.Table()
	ds := t.All()
	if len(args) > 0 {
		ds = t.Filter(args[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d ids", len(ds))
	for _, d := range ds {
		fmt.Fprintf(&b, "\n%#012x %-15s %d %8d %s", d.ID, d.Kind, d.Slot, d.Capacity, d.Path)
	}
	return b.String()
}

// generate one content file the way the game would get it and write it out
func (e *env) gen(args []string, _ string) string {
	if len(args) != 2 {
		return GEN_USAGE
	}

	d, err := e.pipe.Table().Resolve(args[0])
	if err != nil {
		return err.Error()
	}

	data, err := e.pipe.Generate(d)
	if err != nil {
		e.log.Warn("gen", "path", d.Path, "error", err)
		return err.Error()
	}

	if err := os.WriteFile(args[1], data, 0644); err != nil {
		e.log.Error("gen: writing output", "file", args[1], "error", err)
		return err.Error()
	}
	return fmt.Sprintf("wrote %d bytes of %s to %s", len(data), d.Path, args[1])
}

// reload config. the content table is registered once, so size changes
// only take effect after a restart
func (e *env) reload(args []string, _ string) string {
	if len(args) != 1 || args[0] != "config" {
		return RELOAD_USAGE
	}

	e.log.Info("manual reload requested", "file", e.cf)
	cnf, err := load_config(e.cf)
	if err != nil {
		e.log.Error("load_config", "error", err)
		return "internal error; check logs (load_config)"
	}

	e.mu.Lock()
	old := e.cnf
	e.cnf = cnf
	e.mu.Unlock()

	e.log.SetLevel(parseLevel(cnf.LogLevel))

	if old.sizes() != cnf.sizes() || old.ConvertIcons != cnf.ConvertIcons {
		e.log.Warn("content sizes and convert_icons only change on restart")
		return "ok (restart to apply content changes)"
	}
	if old.Listen != cnf.Listen || old.Socket != cnf.Socket {
		e.log.Warn("listen and socket only change on restart")
		return "ok (restart to apply listen/socket)"
	}
	return "ok"
}
