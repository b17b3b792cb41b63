package main

// skinctl: send one command to a running skinswap daemon
// Usage: skinctl [-s socket] command [args...]
//        skinctl select 0 steve.png

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
)

const DEFAULT_SOCKET = "/tmp/skinswap.sock"

func main() {
	sf := flag.String("s", DEFAULT_SOCKET, "control socket of the daemon")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-s socket] command [args...]\n", os.Args[0])
		os.Exit(2)
	}

	resp, err := send(*sf, strings.Join(flag.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(resp)
}

func send(sf, cmd string) (string, error) {
	conn, err := net.Dial("unix", sf)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, cmd); err != nil {
		return "", err
	}

	buf := make([]byte, 1048576)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	return string(buf[:n]), nil
}
