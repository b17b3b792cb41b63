package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Selection runs the configured selector and returns the first line it
// prints. the selector sees the slot in SKINSWAP_SLOT; printing nothing or
// exiting non-zero means no selection. without a selector the current
// selection is kept
func (e *env) Selection(n int) (string, bool) {
	cnf := e.config()
	if cnf.Selector == "" {
		p, ok, _ := e.pipe.Store().Selected(n)
		return p, ok
	}

	p, err := runSelector(cnf.Selector, n)
	if err != nil {
		e.log.Warn("selector", "slot", n, "error", err)
		return "", false
	}

	return cnf.skinPath(p), true
}

func runSelector(command string, n int) (string, error) {
	var out, stderr bytes.Buffer

	cmd := exec.Command("sh", "-c", command)
	cmd.Env = append(os.Environ(), fmt.Sprintf("SKINSWAP_SLOT=%d", n))
	cmd.Stdin = os.Stdin
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	s := bufio.NewScanner(&out)
	if !s.Scan() || strings.TrimSpace(s.Text()) == "" {
		return "", ErrNoSelection
	}
	return strings.TrimSpace(s.Text()), nil
}
