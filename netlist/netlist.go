package netlist

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/smallnest/kirchgo/circuit"
)

// entry is one YAML netlist line. Exactly two of r, v and i must be present;
// the absent one is the branch's unknown. Values may be numbers or symbol
// names.
type entry struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
	R any `yaml:"r,omitempty"`
	V any `yaml:"v,omitempty"`
	I any `yaml:"i,omitempty"`
}

// Load reads a YAML netlist and builds a solved circuit from it. Decoding is
// strict: unknown keys in an entry are an error. Parallel branches between
// the same node pair get their slot indices in document order.
func Load(r io.Reader, opts ...circuit.Option) (*circuit.Circuit, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var entries []entry
	if err := dec.Decode(&entries); err != nil {
		if err == io.EOF {
			return circuit.Build(nil, opts...)
		}
		return nil, fmt.Errorf("netlist: decode: %w", err)
	}

	specs := make([]circuit.BranchSpec, 0, len(entries))
	for i, e := range entries {
		components := make(map[circuit.Component]any, 2)
		if e.R != nil {
			components[circuit.R] = e.R
		}
		if e.V != nil {
			components[circuit.V] = e.V
		}
		if e.I != nil {
			components[circuit.I] = e.I
		}
		if len(components) != 2 {
			return nil, fmt.Errorf("netlist: entry %d: two of r, v, i required, got %d", i, len(components))
		}
		specs = append(specs, circuit.BranchSpec{
			A:          circuit.Node(e.A),
			B:          circuit.Node(e.B),
			Components: components,
		})
	}
	return circuit.Build(specs, opts...)
}

// LoadFile is Load over the named file.
func LoadFile(path string, opts ...circuit.Option) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Save writes the circuit's supplied component values as a YAML netlist, one
// entry per branch in key order. Solved unknowns are not written; loading the
// result re-solves them.
func Save(w io.Writer, c *circuit.Circuit) error {
	branches := c.Branches()
	keys := make([]circuit.BranchKey, 0, len(branches))
	for k := range branches {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.A != b.A {
			return a.A < b.A
		}
		if a.B != b.B {
			return a.B < b.B
		}
		return a.Index < b.Index
	})

	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		br := branches[k]
		e := entry{A: int(k.A), B: int(k.B)}
		for _, comp := range []circuit.Component{circuit.R, circuit.V, circuit.I} {
			if comp == br.Unknown {
				continue
			}
			val := br.Value(comp).String()
			switch comp {
			case circuit.R:
				e.R = val
			case circuit.V:
				e.V = val
			case circuit.I:
				e.I = val
			}
		}
		entries = append(entries, e)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("netlist: encode: %w", err)
	}
	return nil
}

// SaveFile is Save into the named file, created or truncated.
func SaveFile(path string, c *circuit.Circuit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("netlist: %w", err)
	}
	if err := Save(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
