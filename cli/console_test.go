package main

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConsole(t *testing.T) {
	sf := filepath.Join(t.TempDir(), "s.sock")
	l, err := net.Listen("unix", sf)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 256)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			io.WriteString(conn, "got "+string(buf[:n]))
		}
	}()

	var out bytes.Buffer
	if err := console(sf, strings.NewReader("status\n\nids c00\n"), &out); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"connected to server", "got status\n", "got ids c00\n"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("%q missing from %q", want, out.String())
		}
	}
}

type closeCounter int

func (c *closeCounter) Close() error {
	*c++
	return nil
}

func TestWatchInterrupt(t *testing.T) {
	t.Run("done", func(t *testing.T) {
		var c closeCounter
		var out bytes.Buffer
		sigs := make(chan os.Signal, 1)
		done := make(chan struct{})

		returned := make(chan struct{})
		go func() {
			watchInterrupt(sigs, done, &c, &out, func(int) { t.Error("exit called") })
			close(returned)
		}()

		close(done)
		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatal("watcher still running after the console returned")
		}
		if c != 0 || out.Len() != 0 {
			t.Fatalf("closed %d times, wrote %q", c, out.String())
		}
	})

	t.Run("signal", func(t *testing.T) {
		var c closeCounter
		var out bytes.Buffer
		sigs := make(chan os.Signal, 1)
		sigs <- os.Interrupt

		code := -1
		watchInterrupt(sigs, make(chan struct{}), &c, &out, func(n int) { code = n })
		if c != 1 || code != 0 {
			t.Fatalf("closed %d times, exit code %d", c, code)
		}
		if !strings.Contains(out.String(), "caught interrupt") {
			t.Fatalf("got %q", out.String())
		}
	})
}
