package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// IntRange is an inclusive integer interval written as [min, max] in YAML.
type IntRange struct {
	Min int
	Max int
}

// Valid reports whether Min <= Max.
func (r IntRange) Valid() bool {
	return r.Min <= r.Max
}

// UnmarshalYAML accepts either a two-element sequence or a {min, max} mapping.
func (r *IntRange) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: range needs exactly 2 values, got %d", value.Line, len(pair))
		}
		r.Min, r.Max = pair[0], pair[1]
	case yaml.MappingNode:
		var m struct {
			Min int `yaml:"min"`
			Max int `yaml:"max"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		r.Min, r.Max = m.Min, m.Max
	default:
		return fmt.Errorf("line %d: range must be a sequence or mapping", value.Line)
	}
	return nil
}

// MarshalYAML writes the range as a flow sequence.
func (r IntRange) MarshalYAML() (interface{}, error) {
	return flowInts(r.Min, r.Max), nil
}

// RGB is an 8-bit colour written as [r, g, b] in YAML.
type RGB struct {
	R, G, B uint8
}

// UnmarshalYAML accepts a three-element sequence.
func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var vals []int
	if err := value.Decode(&vals); err != nil {
		return err
	}
	if len(vals) != 3 {
		return fmt.Errorf("line %d: colour needs exactly 3 values, got %d", value.Line, len(vals))
	}
	for _, v := range vals {
		if v < 0 || v > 255 {
			return fmt.Errorf("line %d: colour channel %d out of range", value.Line, v)
		}
	}
	c.R, c.G, c.B = uint8(vals[0]), uint8(vals[1]), uint8(vals[2])
	return nil
}

// MarshalYAML writes the colour as a flow sequence.
func (c RGB) MarshalYAML() (interface{}, error) {
	return flowInts(int(c.R), int(c.G), int(c.B)), nil
}

func flowInts(vals ...int) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range vals {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return n
}
