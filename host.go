package main

// host.go: the content registration surface, served over http
//
// the game side asks GET /content/{id} for every file it loads. a 200 carries
// the generated file, anything else means "use your own copy"

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"floc/skinswap/pipeline"
	"floc/skinswap/slot"
)

// biggest selection path accepted over http
const maxPathBody = 4096

func newHost(l hclog.Logger) *host {
	return &host{
		regs: make(map[uint64]registration),
		log:  l,
	}
}

// Register implements pipeline.Registrar
func (h *host) Register(id uint64, capacity uint32, format string, cb pipeline.Callback) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.regs[id]; ok {
		return fmt.Errorf("%w: %#x", ErrAlreadyRegistered, id)
	}
	h.regs[id] = registration{ID: id, Capacity: capacity, Format: format, cb: cb}
	return nil
}

func (h *host) lookup(id uint64) (registration, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.regs[id]
	return r, ok
}

// all registrations ordered by id
func (h *host) list() []registration {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]registration, 0, len(h.regs))
	for _, r := range h.regs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
}

// GET /content/{id}
func (h *host) content(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "bad content id", http.StatusBadRequest)
		return
	}

	reg, ok := h.lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	buf := make([]byte, reg.Capacity)
	handled, n := reg.cb(id, buf)
	if !handled || n < 0 || n > len(buf) {
		h.log.Trace("falling back to the default asset", "id", fmt.Sprintf("%#x", id))
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(n))
	w.Write(buf[:n])
}

// GET /contents
func (h *host) contents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.list()); err != nil {
		h.log.Error("encoding registrations", "error", err)
	}
}

func (e *env) slotVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil || n < 0 || n >= slot.Count {
		http.Error(w, slot.ErrInvalidSlot.Error(), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// POST /slot/{n}/select, body is the path of the new source image
func (e *env) selectHTTP(w http.ResponseWriter, r *http.Request) {
	n, ok := e.slotVar(w, r)
	if !ok {
		return
	}

	b, err := io.ReadAll(io.LimitReader(r.Body, maxPathBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := strings.TrimSpace(string(b))
	if p == "" {
		http.Error(w, "empty path", http.StatusBadRequest)
		return
	}

	if _, err := e.selectSlot(n, p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /slot/{n}
func (e *env) clearHTTP(w http.ResponseWriter, r *http.Request) {
	n, ok := e.slotVar(w, r)
	if !ok {
		return
	}

	e.pipe.Store().Clear(n)
	e.log.Info("slot cleared", "slot", n)
	w.WriteHeader(http.StatusNoContent)
}

// POST /reset
func (e *env) resetHTTP(w http.ResponseWriter, r *http.Request) {
	e.pipe.Store().ResetAll()
	w.WriteHeader(http.StatusNoContent)
}

// GET /slots
func (e *env) slotsHTTP(w http.ResponseWriter, r *http.Request) {
	type info struct {
		Slot  int    `json:"slot"`
		Path  string `json:"path,omitempty"`
		State string `json:"state"`
	}

	var out []info
	for _, i := range e.pipe.Store().Snapshot() {
		out = append(out, info{i.Slot, i.Path, i.State.String()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func returncode(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func (e *env) routes() *mux.Router {
	h := mux.NewRouter()
	hl := e.log.Named("http")

	// log requests as they come in, eliminates a bunch of redundant code
	h.Use(logger(hl))

	h.NotFoundHandler = logger(hl)(returncode(http.StatusNotFound))
	h.MethodNotAllowedHandler = logger(hl)(returncode(http.StatusMethodNotAllowed))

	h.Path("/content/{id:(?:0[xX])?[0-9a-fA-F]+}").Methods("GET").HandlerFunc(e.host.content)
	h.Path("/contents").Methods("GET").HandlerFunc(e.host.contents)

	h.Path("/slots").Methods("GET").HandlerFunc(e.slotsHTTP)
	h.Path("/slot/{n:[0-9]+}/select").Methods("POST").HandlerFunc(e.selectHTTP)
	h.Path("/slot/{n:[0-9]+}").Methods("DELETE").HandlerFunc(e.clearHTTP)
	h.Path("/reset").Methods("POST").HandlerFunc(e.resetHTTP)

	return h
}
