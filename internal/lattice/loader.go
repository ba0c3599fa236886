package lattice

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML form of a lattice:
//
//	fill: true
//	dimensions:
//	  - names: [dt]
//	    values: [1800, 3600]
//	  - names: [clubb_c1]
//	    bounds: {lower: 0.5, upper: 2.0, samples: 4}
//	  - names: [p1, p2, p3]
//	    group: diff
//	    values: ["1,1,1", "2,2,2"]
//	    target: store
//	mask: [true, true, false, true]
//
// Numeric scalars keep their literal text. Fortran strings must carry their
// own quotes inside the YAML scalar, e.g. "'cosp'".
type Definition struct {
	Fill       *bool            `yaml:"fill,omitempty"`
	Dimensions []DimensionEntry `yaml:"dimensions"`
	Mask       []bool           `yaml:"mask,omitempty"`
}

// DimensionEntry declares one dimension inside a Definition.
type DimensionEntry struct {
	Names  NameList     `yaml:"names"`
	Group  string       `yaml:"group,omitempty"`
	Target string       `yaml:"target,omitempty"`
	Values yaml.Node    `yaml:"values,omitempty"`
	Bounds *BoundsEntry `yaml:"bounds,omitempty"`
}

// BoundsEntry is the YAML form of Bounds.
type BoundsEntry struct {
	Lower   float64 `yaml:"lower"`
	Upper   float64 `yaml:"upper"`
	Samples int     `yaml:"samples"`
	Log     bool    `yaml:"log,omitempty"`
}

// NameList accepts either a YAML sequence or a comma-separated string.
type NameList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NameList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var names []string
		for _, part := range strings.Split(value.Value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		*n = names
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		*n = names
		return nil
	}
	return fmt.Errorf("line %d: names must be a string or a list", value.Line)
}

// Mode returns the expansion mode declared by the definition.
func (def Definition) Mode() Mode {
	if def.Fill != nil && !*def.Fill {
		return ModeZip
	}
	return ModeFill
}

// Registry registers every dimension in order and applies the mask, if any.
func (def Definition) Registry(opts ...Option) (*Registry, error) {
	opts = append([]Option{WithMode(def.Mode())}, opts...)
	reg := NewRegistry(opts...)
	for i, entry := range def.Dimensions {
		if err := entry.register(reg); err != nil {
			return nil, fmt.Errorf("lattice: dimensions[%d]: %w", i, err)
		}
	}
	if len(def.Mask) > 0 {
		if err := reg.Filter(def.Mask); err != nil {
			return nil, fmt.Errorf("lattice: mask: %w", err)
		}
	}
	return reg, nil
}

func (entry DimensionEntry) register(reg *Registry) error {
	target, err := ParseTarget(entry.Target)
	if err != nil {
		return err
	}
	if strings.TrimSpace(entry.Group) != "" {
		if entry.Bounds != nil {
			return fmt.Errorf("%w: bounds cannot be used for group %s; list the values", ErrConflictingArguments, entry.Group)
		}
		tuples, err := tupleNodes(&entry.Values)
		if err != nil {
			return err
		}
		return reg.AddGroup(GroupSpec{Names: entry.Names, Values: tuples, Label: entry.Group, Target: target})
	}
	if len(entry.Names) != 1 {
		return fmt.Errorf("%w: a scalar entry takes exactly one name, got %v (set group: for grouped names)", ErrConflictingArguments, []string(entry.Names))
	}
	spec := ScalarSpec{Name: entry.Names[0]}
	if entry.Bounds != nil {
		spec.Bounds = &Bounds{
			Lower:   entry.Bounds.Lower,
			Upper:   entry.Bounds.Upper,
			Samples: entry.Bounds.Samples,
			Log:     entry.Bounds.Log,
		}
	}
	if spec.Values, err = scalarNodes(&entry.Values); err != nil {
		return err
	}
	return reg.AddScalar(target, spec)
}

func scalarNodes(node *yaml.Node) ([]Value, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: values must be a list", node.Line)
	}
	out := make([]Value, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: scalar dimension values must be scalars", item.Line)
		}
		out = append(out, valueFromNode(item))
	}
	return out, nil
}

func tupleNodes(node *yaml.Node) ([]Tuple, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: values must be a list", node.Line)
	}
	out := make([]Tuple, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			out = append(out, ParseTuple(item.Value))
		case yaml.SequenceNode:
			tuple := make(Tuple, 0, len(item.Content))
			for _, component := range item.Content {
				if component.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %d: group components must be scalars", component.Line)
				}
				tuple = append(tuple, valueFromNode(component))
			}
			out = append(out, tuple)
		default:
			return nil, fmt.Errorf("line %d: group values must be strings or lists", item.Line)
		}
	}
	return out, nil
}

func valueFromNode(node *yaml.Node) Value {
	switch node.ShortTag() {
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return Value{Kind: KindNumber, Number: f, Text: node.Value}
		}
	}
	return ParseValue(node.Value)
}

// ParseDefinitionYAML decodes a lattice definition.
func ParseDefinitionYAML(data []byte) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, fmt.Errorf("lattice: definition payload is empty")
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("lattice: decode definition: %w", err)
	}
	if len(def.Dimensions) == 0 {
		return Definition{}, fmt.Errorf("lattice: definition declares no dimensions")
	}
	return def, nil
}

// LoadDefinitionReader reads a definition from r.
func LoadDefinitionReader(r io.Reader) (Definition, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Definition{}, fmt.Errorf("lattice: read definition: %w", err)
	}
	return ParseDefinitionYAML(content)
}

// LoadDefinitionFile loads a definition from path.
func LoadDefinitionFile(path string) (Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("lattice: read %s: %w", path, err)
	}
	def, parseErr := ParseDefinitionYAML(content)
	if parseErr != nil {
		return Definition{}, fmt.Errorf("lattice: %s: %w", path, parseErr)
	}
	return def, nil
}
