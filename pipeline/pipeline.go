// Package pipeline turns a content request from the host into a packed
// texture: it finds the slot and kind behind the id, renders the selected skin
// for that kind and packs it into the buffer the host handed over.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"floc/skinswap/skin"
	"floc/skinswap/slot"
	"floc/skinswap/tex"
)

// Callback fills buf, whose length is the capacity registered for id, and
// reports whether it did and how many bytes count as written
type Callback func(id uint64, buf []byte) (handled bool, written int)

// Registrar is the host side: it calls cb whenever id is requested
type Registrar interface {
	Register(id uint64, capacity uint32, format string, cb Callback) error
}

// Prompter asks the user to pick a source image for a slot
type Prompter interface {
	Selection(slot int) (path string, ok bool)
}

type Options struct {
	Logger hclog.Logger

	// run legacy skins through the layout converter before building icons;
	// without it legacy skins get no icon
	ConvertIcons bool

	// asked for a selection when a primary texture is requested, at most
	// once per content id until the store is reset
	Prompter Prompter

	// decodes a selected path, skin.Load when nil
	Load slot.RenderFunc
}

type Pipeline struct {
	table *Table
	store *slot.Store
	log   hclog.Logger
	opts  Options
}

func New(t *Table, s *slot.Store, o Options) *Pipeline {
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	if o.Load == nil {
		o.Load = skin.Load
	}

	return &Pipeline{table: t, store: s, log: o.Logger, opts: o}
}

func (p *Pipeline) Table() *Table {
	return p.table
}

func (p *Pipeline) Store() *slot.Store {
	return p.store
}

// Register hands every content id of the table to the host
func (p *Pipeline) Register(r Registrar) error {
	for _, d := range p.table.all {
		if err := r.Register(d.ID, uint32(d.Capacity), d.Format.String(), p.Handle); err != nil {
			return fmt.Errorf("register %s: %w", d.Path, err)
		}
	}
	p.log.Info("registered content", "count", len(p.table.all))
	return nil
}

// Render builds the final image of d out of the selection of its slot.
// The slot lock is held only while the selection is read and decoded.
// Normalizing and generating work on a private copy of the cached decode,
// so a Select racing with Render yields either the old or the new skin,
// never a mix of both.
func (p *Pipeline) Render(d Descriptor) (*image.NRGBA, error) {
	src, err := p.store.Render(d.Slot, p.opts.Load)
	if err != nil {
		return nil, err
	}

	// src is the cached decode and is shared, nothing below may write to it
	switch d.Kind {
	case Texture:
		m, err := skin.Normalize(src)
		if err != nil {
			return nil, err
		}
		if m == src {
			m = skin.Clone(src)
		}
		skin.Grade(m)
		return m, nil

	case Icon:
		m := src
		if p.opts.ConvertIcons {
			if m, err = skin.Normalize(src); err != nil {
				return nil, err
			}
		}
		return skin.GenIcon(m)

	case PortraitSmall, PortraitMedium, PortraitLarge:
		m, err := skin.Normalize(src)
		if err != nil {
			return nil, err
		}
		return skin.GenPortrait(m, d.Size)

	default:
		return nil, fmt.Errorf("%w: kind %v", ErrUnknownContent, d.Kind)
	}
}

func (p *Pipeline) generate(d Descriptor, buf []byte) (int, error) {
	img, err := p.Render(d)
	if err != nil {
		return 0, err
	}

	return tex.Pack(buf, d.Format, d.Path, img)
}

// Generate renders and packs d into a new buffer of its capacity
func (p *Pipeline) Generate(d Descriptor) ([]byte, error) {
	buf := make([]byte, d.Capacity)
	n, err := p.generate(d, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Handle is the Callback registered for every content id. it never panics
// and never returns an error; the host falls back to its own asset whenever
// handled is false
func (p *Pipeline) Handle(id uint64, buf []byte) (handled bool, written int) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("generation panicked", "id", hexid(id), "panic", r)
			handled, written = false, 0
		}
	}()

	d, ok := p.table.Lookup(id)
	if !ok {
		p.log.Debug("not our content", "id", hexid(id))
		return false, 0
	}
	if len(buf) != d.Capacity {
		p.log.Warn("buffer size differs from registered capacity", "path", d.Path, "buffer", len(buf), "capacity", d.Capacity)
	}

	p.prompt(d)

	n, err := p.generate(d, buf)
	if err != nil {
		p.fail(d, err)
		return false, 0
	}

	p.log.Debug("generated", "path", d.Path, "kind", d.Kind, "slot", d.Slot, "written", n)
	return true, n
}

func (p *Pipeline) prompt(d Descriptor) {
	if p.opts.Prompter == nil || d.Kind != Texture || !p.store.ShouldPrompt(d.ID) {
		return
	}

	path, ok := p.opts.Prompter.Selection(d.Slot)
	if !ok {
		path = ""
	}
	if cur, _, _ := p.store.Selected(d.Slot); cur == path {
		return
	}
	if err := p.store.Select(d.Slot, path); err != nil {
		p.log.Error("select after prompt", "slot", d.Slot, "error", err)
		return
	}
	p.log.Info("selection changed", "slot", d.Slot, "path", path)
}

func (p *Pipeline) fail(d Descriptor, err error) {
	l := p.log.With("path", d.Path, "slot", d.Slot, "error", err)

	switch {
	case errors.Is(err, slot.ErrEmpty):
		l.Trace("nothing selected")
	case errors.Is(err, skin.ErrDecode):
		l.Warn("selection could not be decoded, treating as no selection")
	case errors.Is(err, skin.ErrNoPalette):
		l.Error("palette extraction failed")
	case errors.Is(err, skin.ErrLayout), errors.Is(err, skin.ErrNotSquare):
		l.Warn("selection has the wrong shape")
	case errors.Is(err, tex.ErrOverflow), errors.Is(err, tex.ErrCapacity):
		l.Error("content capacity is too small, the content table is wrong")
	default:
		l.Error("generation failed")
	}
}

func hexid(id uint64) string {
	return fmt.Sprintf("%#x", id)
}
