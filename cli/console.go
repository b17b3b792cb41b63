package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const DEFAULT_SOCKET = "/tmp/skinswap.sock"

func consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console [SOCKET]",
		Short: "Interactive prompt for a running daemon's control socket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := DEFAULT_SOCKET
			if len(args) > 0 {
				addr = args[0]
			}
			return console(addr, os.Stdin, cmd.OutOrStdout())
		},
	}
}

func console(addr string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "trying %v\n", addr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	conn, err := net.Dial("unix", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go watchInterrupt(sigs, done, conn, out, os.Exit)

	fmt.Fprintf(out, "connected to server @ %s\n", addr)

	s := bufio.NewScanner(in)
	buf := make([]byte, 1048576) // read at most 1MiB, this should never be too little
	for {
		fmt.Fprint(out, "> ")
		if !s.Scan() {
			return s.Err()
		}
		if len(s.Bytes()) == 0 {
			continue
		}

		if _, err := conn.Write(s.Bytes()); err != nil {
			return err
		}

		n, err := conn.Read(buf)
		if err != nil && err != io.EOF {
			return err
		}

		fmt.Fprintf(out, "%s\n", string(buf[:n]))
	}
}

// watchInterrupt closes c and exits once a signal arrives on sigs.
// it returns without doing anything when done is closed first
func watchInterrupt(sigs <-chan os.Signal, done <-chan struct{}, c io.Closer, out io.Writer, exit func(int)) {
	select {
	case sig := <-sigs:
		c.Close()
		fmt.Fprintf(out, "caught %v, exiting\n", sig)
		exit(0)
	case <-done:
	}
}
