// This file implements the YAML manifest boundary: a declarative
// registry + ballots + params document decoded into engine inputs.
package pipeline

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/frontier"
)

// UnitSpec is one YAML unit declaration.
type UnitSpec struct {
	ID          core.UnitID  `yaml:"id"`
	DisplayName string       `yaml:"display_name"`
	Protected   bool         `yaml:"protected"`
	Options     []OptionSpec `yaml:"options"`
}

// OptionSpec is one YAML option declaration; rank indexes are assigned
// from declaration order when omitted.
type OptionSpec struct {
	ID          core.OptionID `yaml:"id"`
	DisplayName string        `yaml:"display_name"`
	RankIndex   *int          `yaml:"rank_index"`
}

// EdgeSpec is one YAML adjacency declaration.
type EdgeSpec struct {
	A    core.UnitID       `yaml:"a"`
	B    core.UnitID       `yaml:"b"`
	Kind frontier.EdgeKind `yaml:"kind"`
}

// Manifest is the whole run document.
type Manifest struct {
	Units   []UnitSpec                  `yaml:"units"`
	Ballots map[core.UnitID]UnitBallots `yaml:"ballots"`
	Edges   []EdgeSpec                  `yaml:"edges"`
	Params  Params                      `yaml:"params"`
}

// DecodeManifest reads a YAML manifest and validates it into engine
// Inputs plus the parameter snapshot. Schema-level validation beyond
// structural decoding is the caller's concern.
func DecodeManifest(r io.Reader) (Inputs, Params, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Inputs{}, Params{}, fmt.Errorf("pipeline: manifest decode: %w", err)
	}
	return m.Build()
}

// Build validates the decoded manifest into engine Inputs.
func (m Manifest) Build() (Inputs, Params, error) {
	units := make([]core.Unit, 0, len(m.Units))
	for _, us := range m.Units {
		opts := make([]core.OptionItem, len(us.Options))
		for i, os := range us.Options {
			rank := i
			if os.RankIndex != nil {
				rank = *os.RankIndex
			}
			name := os.DisplayName
			if name == "" {
				name = string(os.ID)
			}
			opts[i] = core.OptionItem{ID: os.ID, DisplayName: name, RankIndex: rank}
		}
		name := us.DisplayName
		if name == "" {
			name = string(us.ID)
		}
		u, err := core.NewUnit(us.ID, name, us.Protected, opts)
		if err != nil {
			return Inputs{}, Params{}, err
		}
		units = append(units, u)
	}
	reg, err := core.NewRegistry(units)
	if err != nil {
		return Inputs{}, Params{}, err
	}

	edges := make([]frontier.Edge, len(m.Edges))
	for i, e := range m.Edges {
		edges[i] = frontier.Edge{A: e.A, B: e.B, Kind: e.Kind}
	}

	if err := m.Params.Validate(); err != nil {
		return Inputs{}, Params{}, err
	}
	return Inputs{Registry: reg, Ballots: m.Ballots, Edges: edges}, m.Params, nil
}
