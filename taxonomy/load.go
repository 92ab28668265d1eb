package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Clues []Clue `yaml:"clues"`
	Goals []Goal `yaml:"goals"`
}

// Parse reads a taxonomy document. YAML is a superset of JSON, so both
// formats go through the YAML decoder.
func Parse(data []byte) (*Taxonomy, error) {
	f := file{}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding taxonomy: %w", err)
	}
	return New(f.Clues, f.Goals)
}

// Load reads a taxonomy file. An empty path yields Default().
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Display colours, in the terminal palette order used by NetHack.
const (
	Black = iota
	Red
	Green
	Brown
	Blue
	Magenta
	Cyan
	Gray
	NoColor
	Orange
	BrightGreen
	Yellow
	BrightBlue
	BrightMagenta
	BrightCyan
	White
)

// Default is a three room catalogue: kitchen, armoury and library.
func Default() *Taxonomy {
	t, err := New(
		[]Clue{
			{Name: "apple", Symbols: "%", Color: Red, Likelihoods: []float64{0.9, 0.1, 0.2}},
			{Name: "knife", Symbols: ")", Color: Cyan, Likelihoods: []float64{0.6, 0.8, 0.1}},
			{Name: "shield", Symbols: "[", Color: Gray, Likelihoods: []float64{0.1, 0.9, 0.1}},
			{Name: "scroll", Symbols: "?", Color: White, Likelihoods: []float64{0.1, 0.2, 0.9}},
			{Name: "spellbook", Symbols: "+", Color: Blue, Likelihoods: []float64{0.05, 0.1, 0.8}},
			{Name: "potion", Symbols: "!", Color: Magenta, Likelihoods: []float64{0.5, 0.3, 0.4}},
		},
		[]Goal{
			{Name: "tin opener", Symbol: "(", Color: Brown},
			{Name: "ruby ring", Symbol: "=", Color: Red},
			{Name: "gold amulet", Symbol: "\"", Color: Yellow},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}
