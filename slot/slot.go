// Package slot holds the per character selection state: which source image is
// selected for each of the 8 slots and the image rendered from it.
//
// Every slot has its own lock, held for the whole of a selection or a render,
// so a render never sees a selection half applied and slots never wait on
// each other.
package slot

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// Count is the number of slots, one per character instance
const Count = 8

var (
	ErrInvalidSlot = errors.New("invalid slot index")
	ErrEmpty       = errors.New("no image selected")
)

// State is the lifecycle stage of a slot
type State int

const (
	Empty State = iota
	Selected
	Rendered
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Selected:
		return "selected"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RenderFunc builds the image cached for a selected path
type RenderFunc func(path string) (*image.NRGBA, error)

// Info is a snapshot of one slot
type Info struct {
	Slot  int    `json:"slot"`
	Path  string `json:"path,omitempty"`
	State State  `json:"-"`
}

type slot struct {
	mu     sync.Mutex
	path   string
	render *image.NRGBA
}

func (s *slot) state() State {
	switch {
	case s.path == "":
		return Empty
	case s.render == nil:
		return Selected
	default:
		return Rendered
	}
}

// Store owns all slot state. the zero value is ready to use
type Store struct {
	slots [Count]slot

	// last content id a selection prompt was shown for, 0 if none
	last atomic.Uint64
}

func New() *Store {
	return &Store{}
}

func (s *Store) get(i int) (*slot, error) {
	if i < 0 || i >= Count {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	return &s.slots[i], nil
}

// Select sets the source image of slot i and drops whatever was rendered from
// the previous one. an empty path clears the selection
func (s *Store) Select(i int, path string) error {
	sl, err := s.get(i)
	if err != nil {
		return err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.path = path
	sl.render = nil
	return nil
}

// Clear removes the selection of slot i
func (s *Store) Clear(i int) error {
	return s.Select(i, "")
}

// Selected returns the selected path of slot i, if any
func (s *Store) Selected(i int) (string, bool, error) {
	sl, err := s.get(i)
	if err != nil {
		return "", false, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	return sl.path, sl.path != "", nil
}

// Render returns the image rendered from the selection of slot i, calling fn
// and caching its result if nothing is cached yet. fn runs under the slot lock.
// failures are not cached. ErrEmpty is returned when nothing is selected.
//
// the returned image is shared with later calls and must not be modified
func (s *Store) Render(i int, fn RenderFunc) (*image.NRGBA, error) {
	sl, err := s.get(i)
	if err != nil {
		return nil, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.path == "" {
		return nil, ErrEmpty
	}
	if sl.render != nil {
		return sl.render, nil
	}

	img, err := fn(sl.path)
	if err != nil {
		return nil, err
	}

	sl.render = img
	return img, nil
}

// State returns the lifecycle stage of slot i
func (s *Store) State(i int) (State, error) {
	sl, err := s.get(i)
	if err != nil {
		return Empty, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	return sl.state(), nil
}

// Snapshot returns the state of every slot. slots are read one at a time
func (s *Store) Snapshot() []Info {
	out := make([]Info, 0, Count)
	for i := range s.slots {
		sl := &s.slots[i]
		sl.mu.Lock()
		out = append(out, Info{Slot: i, Path: sl.path, State: sl.state()})
		sl.mu.Unlock()
	}
	return out
}

// ShouldPrompt records id as the last content a selection prompt was shown
// for and reports whether it differs from the previous one
func (s *Store) ShouldPrompt(id uint64) bool {
	return s.last.Swap(id) != id
}

// ResetAll forgets the last prompted content, so the next request prompts again
func (s *Store) ResetAll() {
	s.last.Store(0)
}
