package main

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
	"unicode"

	"github.com/hashicorp/go-hclog"
)

func newIpcListener(sf string, c cmdHandler, l hclog.Logger) (*ipcListener, error) {
	s := &ipcListener{
		quit:  make(chan interface{}),
		log:   l,
		conns: make(map[int]net.Conn),
	}
	ln, err := net.Listen("unix", sf)
	if err != nil {
		return nil, err
	}
	s.listener = ln
	s.wg.Add(1)
	go s.serve(c)
	return s, nil
}

func newCmdHandler() cmdHandler {
	return make(cmdHandler) // Not really a handler in the true sense
}

func (c cmdHandler) register(n string, h cmdHandlerFunc) {
	c[n] = h
}

// run one request line and build the response
func (c cmdHandler) run(req string) string {
	args := strings.Fields(req)
	if len(args) == 0 {
		return "ok"
	}

	f, ok := c[args[0]]
	if !ok {
		return "unknown command " + args[0]
	}

	line := strings.TrimLeftFunc(req, unicode.IsSpace)[len(args[0]):]

	s := time.Now()
	return fmt.Sprintf("%s: %s (%dms)", args[0], f(args[1:], line), time.Since(s).Milliseconds())
}

func (s *ipcListener) stop() {
	close(s.quit)
	s.listener.Close()

	s.mu.Lock()
	for k, ic := range s.conns {
		ic.Close()
		delete(s.conns, k)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ipcListener) serve(c cmdHandler) {
	id := 0
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
				s.log.Error("socket accept error", "error", err)
				continue
			}
		}

		id++
		s.mu.Lock()
		s.conns[id] = conn
		s.mu.Unlock()

		s.wg.Add(1)
		go func(id int) {
			defer s.wg.Done()
			s.ipc(id, conn, c)

			s.mu.Lock()
			delete(s.conns, id)
			s.mu.Unlock()
		}(id)
		s.log.Debug("new conn", "id", id)
	}
}

func (s *ipcListener) ipc(id int, conn net.Conn, c cmdHandler) {
	defer conn.Close()

	buf := make([]byte, 4096)

	for {
		n, err := conn.Read(buf)
		if err != nil && err != io.EOF {
			select {
			case <-s.quit:
			default:
				s.log.Error("read error", "id", id, "error", err)
			}
			return
		}
		if n == 0 {
			return
		}
		req := strings.TrimSpace(string(buf[:n]))

		resp := c.run(req)
		s.log.Info("ran command", "id", id, "cmd", req)
		io.WriteString(conn, resp)
	}
}
