package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
)

// level strings hclog does not know fall back to info
func parseLevel(level string) hclog.Level {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return hclog.Info
	}
	return lvl
}

func newLogger(level string) hclog.Logger {
	lvl := parseLevel(level)

	return hclog.New(&hclog.LoggerOptions{
		Name:            "skinswap",
		Level:           lvl,
		Output:          os.Stderr,
		JSONFormat:      os.Getenv("SKINSWAP_JSON_LOG") == "1",
		IncludeLocation: lvl <= hclog.Debug,
		Color:           hclog.AutoColor,
	})
}

func wrapResponseWriter(w http.ResponseWriter) *rwWrapper {
	return &rwWrapper{ResponseWriter: w, status: http.StatusOK}
}

func (rw *rwWrapper) Status() int {
	return rw.status
}

func (rw *rwWrapper) WriteHeader(code int) {
	if rw.done {
		return
	}

	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
	rw.done = true
}

func (rw *rwWrapper) Write(b []byte) (int, error) {
	rw.done = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

// logger is middleware to log all HTTP requests and responses
func logger(l hclog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			l.Trace("request", "method", r.Method, "uri", r.RequestURI, "remote", r.RemoteAddr)

			s := time.Now()
			rww := wrapResponseWriter(w)
			next.ServeHTTP(rww, r)

			l.Debug("response", "status", rww.status, "method", r.Method, "uri", r.RequestURI,
				"bytes", rww.written, "took", time.Since(s))
		}

		return http.HandlerFunc(fn)
	}
}
