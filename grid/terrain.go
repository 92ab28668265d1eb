package grid

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSymbol  = errors.New("unknown map symbol")
	ErrSymbolConflict = errors.New("symbol assigned to more than one terrain kind")
)

// Kind is the semantic category of a map symbol
type Kind uint8

const (
	Unknown Kind = iota
	Wall
	Floor
	VirtualFloor
	Landmark
	Player
)

func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case VirtualFloor:
		return "virtual-floor"
	case Landmark:
		return "landmark"
	case Player:
		return "player"
	default:
		return "unknown"
	}
}

// Walkable reports whether the agent can stand on a cell of this kind.
func (k Kind) Walkable() bool {
	return k == Floor || k == VirtualFloor || k == Landmark || k == Player
}

// Symbols enumerates the raw bytes a map may contain.
// Dark covers unlit or solid rock cells: neither wall nor walkable.
type Symbols struct {
	Walls     []byte
	Floor     byte
	Virtual   byte
	Player    byte
	Dark      []byte
	Landmarks []byte
}

// DefaultSymbols uses the MiniHack conventions. Landmarks are empty and
// are filled in from a taxonomy.
func DefaultSymbols() Symbols {
	return Symbols{
		Walls:   []byte{'|', '-'},
		Floor:   '.',
		Virtual: '{',
		Player:  '@',
		Dark:    []byte{' ', '#'},
	}
}

// WithLandmarks returns a copy of s with the given landmark symbols.
func (s Symbols) WithLandmarks(landmarks []byte) Symbols {
	out := s
	out.Landmarks = append([]byte(nil), landmarks...)
	return out
}

// Table is the byte -> Kind lookup built once per episode from a symbol set.
type Table struct {
	symbols Symbols
	kinds   [256]Kind
	known   [256]bool
}

func NewTable(s Symbols) (*Table, error) {
	t := &Table{symbols: s}
	assign := func(b byte, k Kind) error {
		if t.known[b] && t.kinds[b] != k {
			return fmt.Errorf("%w: %q is both %s and %s", ErrSymbolConflict, b, t.kinds[b], k)
		}
		t.known[b] = true
		t.kinds[b] = k
		return nil
	}
	for _, b := range s.Walls {
		if err := assign(b, Wall); err != nil {
			return nil, err
		}
	}
	for _, b := range s.Dark {
		if err := assign(b, Unknown); err != nil {
			return nil, err
		}
	}
	for _, b := range s.Landmarks {
		if err := assign(b, Landmark); err != nil {
			return nil, err
		}
	}
	if err := assign(s.Floor, Floor); err != nil {
		return nil, err
	}
	if err := assign(s.Virtual, VirtualFloor); err != nil {
		return nil, err
	}
	if err := assign(s.Player, Player); err != nil {
		return nil, err
	}
	return t, nil
}

// MustTable is NewTable for symbol sets known to be valid.
func MustTable(s Symbols) *Table {
	t, err := NewTable(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Symbols() Symbols {
	return t.symbols
}

// Classify maps a raw symbol to its kind. An un-enumerated byte is a
// configuration error.
func (t *Table) Classify(b byte) (Kind, error) {
	if !t.known[b] {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownSymbol, b)
	}
	return t.kinds[b], nil
}

// WalkableSymbols returns every symbol whose kind is walkable.
func (t *Table) WalkableSymbols() []byte {
	out := make([]byte, 0)
	for b := 0; b < len(t.kinds); b++ {
		if t.known[b] && t.kinds[b].Walkable() {
			out = append(out, byte(b))
		}
	}
	return out
}
