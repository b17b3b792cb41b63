package pipeline

// content.go: the fixed table of asset ids the host asks for

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"floc/skinswap/skin"
	"floc/skinswap/slot"
	"floc/skinswap/tex"
)

// IconSize is the edge of the embedded stock icon template
const IconSize = 64

var (
	ErrUnknownContent   = errors.New("unknown content")
	ErrDuplicateContent = errors.New("duplicate content id")
)

// Kind is what a content id is rendered as
type Kind int

const (
	Texture Kind = iota
	Icon
	PortraitSmall
	PortraitMedium
	PortraitLarge
)

func (k Kind) String() string {
	switch k {
	case Texture:
		return "texture"
	case Icon:
		return "icon"
	case PortraitSmall:
		return "portrait-small"
	case PortraitMedium:
		return "portrait-medium"
	case PortraitLarge:
		return "portrait-large"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Descriptor describes one asset the host can request
type Descriptor struct {
	ID       uint64
	Path     string
	Kind     Kind
	Slot     int
	Size     int // largest edge rendered for this content
	Capacity int // fixed buffer size the host hands over
	Format   tex.Format
}

// Sizes picks the image sizes, and so the capacities, of the default table
type Sizes struct {
	MaxScale int // largest skin scale a primary texture can hold
	Small    int
	Medium   int
	Large    int
}

func DefaultSizes() Sizes {
	return Sizes{MaxScale: 4, Small: 128, Medium: 256, Large: 512}
}

var families = []struct {
	kind   Kind
	format tex.Format
	path   string
}{
	{Texture, tex.Nutex, "fighter/pickel/model/body/c%02d/def_pickel_001_col.nutexb"},
	{Icon, tex.Bntx, "ui/replace_patch/chara/chara_2/chara_2_pickel_%02d.bntx"},
	{PortraitMedium, tex.Bntx, "ui/replace_patch/chara/chara_3/chara_3_pickel_%02d.bntx"},
	{PortraitSmall, tex.Bntx, "ui/replace_patch/chara/chara_4/chara_4_pickel_%02d.bntx"},
	{PortraitLarge, tex.Bntx, "ui/replace_patch/chara/chara_6/chara_6_pickel_%02d.bntx"},
}

func (s Sizes) edge(k Kind) int {
	switch k {
	case Texture:
		return skin.Base * s.MaxScale
	case Icon:
		return IconSize
	case PortraitSmall:
		return s.Small
	case PortraitMedium:
		return s.Medium
	default:
		return s.Large
	}
}

// Table maps content ids to descriptors. it never changes once built
type Table struct {
	byID map[uint64]Descriptor
	all  []Descriptor
}

// NewTable indexes ds by id
func NewTable(ds []Descriptor) (*Table, error) {
	t := &Table{byID: make(map[uint64]Descriptor, len(ds))}
	for _, d := range ds {
		if _, ok := t.byID[d.ID]; ok {
			return nil, fmt.Errorf("%w: %#x (%s)", ErrDuplicateContent, d.ID, d.Path)
		}
		t.byID[d.ID] = d
		t.all = append(t.all, d)
	}
	return t, nil
}

// Descriptors builds the five content families for every slot
func Descriptors(s Sizes) []Descriptor {
	var ds []Descriptor
	for _, f := range families {
		for i := 0; i < slot.Count; i++ {
			p := fmt.Sprintf(f.path, i)
			e := s.edge(f.kind)
			ds = append(ds, Descriptor{
				ID:       tex.Hash40(p),
				Path:     p,
				Kind:     f.kind,
				Slot:     i,
				Size:     e,
				Capacity: tex.Size(f.format, e, e),
				Format:   f.format,
			})
		}
	}
	return ds
}

// DefaultTable builds the table for the given sizes
func DefaultTable(s Sizes) (*Table, error) {
	return NewTable(Descriptors(s))
}

func (t *Table) Lookup(id uint64) (Descriptor, bool) {
	d, ok := t.byID[id]
	return d, ok
}

func (t *Table) ByPath(p string) (Descriptor, bool) {
	return t.Lookup(tex.Hash40(p))
}

// All returns the descriptors in table order
func (t *Table) All() []Descriptor {
	return append([]Descriptor(nil), t.all...)
}

// Filter returns the descriptors whose path or kind contains sub
func (t *Table) Filter(sub string) []Descriptor {
	var out []Descriptor
	for _, d := range t.all {
		if strings.Contains(d.Path, sub) || strings.Contains(d.Kind.String(), sub) {
			out = append(out, d)
		}
	}
	return out
}

// Resolve accepts an asset path or a hex content id (0x prefix optional)
func (t *Table) Resolve(s string) (Descriptor, error) {
	if d, ok := t.ByPath(s); ok {
		return d, nil
	}
	if id, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64); err == nil {
		if d, ok := t.Lookup(id); ok {
			return d, nil
		}
	}

	if sug, ok := t.Suggest(s); ok {
		return Descriptor{}, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownContent, s, sug)
	}
	return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownContent, s)
}

// Suggest returns the known path closest to s, if one is close enough
func (t *Table) Suggest(s string) (string, bool) {
	type cand struct {
		path string
		dist int
	}
	var cs []cand
	for _, d := range t.all {
		cs = append(cs, cand{d.Path, levenshtein.ComputeDistance(strings.ToLower(s), d.Path)})
	}
	if len(cs) == 0 {
		return "", false
	}
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].dist < cs[j].dist })

	if cs[0].dist > suggestLimit(len(cs[0].path)) {
		return "", false
	}
	return cs[0].path, true
}

func suggestLimit(length int) int {
	if length < 12 {
		return 2
	}
	return length / 6
}
