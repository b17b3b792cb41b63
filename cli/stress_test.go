package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStress(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contents", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]contentInfo{{ID: 1, Capacity: 32}, {ID: 2, Capacity: 32}})
	})
	mux.HandleFunc("/content/0x1", func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 32))
	})
	mux.HandleFunc("/content/0x2", http.NotFound)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	r, err := stress(srv.URL, 4, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if r.failed != 0 || r.ok == 0 || r.fallback == 0 {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.bytes != int64(r.ok)*32 {
		t.Fatalf("%d bytes for %d generated", r.bytes, r.ok)
	}
}

func TestStressNoDaemon(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := stress(srv.URL, 1, time.Millisecond); err == nil {
		t.Fatalf("expected an error without a content listing")
	}
}
