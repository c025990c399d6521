// Package golden records and verifies reference noise values so that every
// implementation of the field can be checked against the same literals.
package golden

import (
	"errors"
	"fmt"
	"os"

	"github.com/MeKo-Tech/hexnoise/pkg/qrnoise"
	"gopkg.in/yaml.v3"
)

// Kind selects which noise operation a Case exercises.
type Kind string

const (
	KindRand   Kind = "rand"   // SeedQR followed by one Rand
	KindVNoise Kind = "vnoise" // VNoise
	KindFBM    Kind = "fbm"    // FBM
)

var (
	// ErrFixtureNotFound is returned when a named case is not in a FixtureSet.
	ErrFixtureNotFound = errors.New("fixture not found")

	// ErrUnknownKind is returned when a case names an unsupported operation.
	ErrUnknownKind = errors.New("unknown fixture kind")
)

// Case is a single reference evaluation.
type Case struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	Seed int32  `yaml:"seed"`
	Q    int32  `yaml:"q"`
	R    int32  `yaml:"r"`
	Freq int    `yaml:"freq,omitempty"`
	Oct  int    `yaml:"oct,omitempty"`
	Want int    `yaml:"want"`
}

func (c Case) String() string {
	switch c.Kind {
	case KindRand:
		return fmt.Sprintf("%s(seed=%d q=%d r=%d)", c.Kind, c.Seed, c.Q, c.R)
	case KindFBM:
		return fmt.Sprintf("%s(seed=%d q=%d r=%d freq=%d oct=%d)", c.Kind, c.Seed, c.Q, c.R, c.Freq, c.Oct)
	default:
		return fmt.Sprintf("%s(seed=%d q=%d r=%d freq=%d)", c.Kind, c.Seed, c.Q, c.R, c.Freq)
	}
}

// FixtureSet is the on-disk form of a list of cases.
type FixtureSet struct {
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

// Validate checks that names are unique and every kind is known.
func (s FixtureSet) Validate() error {
	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case KindRand, KindVNoise, KindFBM:
		default:
			return fmt.Errorf("case %q: %w: %q", c.Name, ErrUnknownKind, c.Kind)
		}
	}
	return nil
}

// Find returns the case with the given name.
func (s FixtureSet) Find(name string) (Case, error) {
	for _, c := range s.Cases {
		if c.Name == name {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("%w: %s", ErrFixtureNotFound, name)
}

// Select returns the named cases in the order given. With no names the set
// is returned unchanged.
func (s FixtureSet) Select(names []string) (FixtureSet, error) {
	if len(names) == 0 {
		return s, nil
	}

	out := FixtureSet{Description: s.Description, Cases: make([]Case, 0, len(names))}
	for _, name := range names {
		c, err := s.Find(name)
		if err != nil {
			return FixtureSet{}, err
		}
		out.Cases = append(out.Cases, c)
	}
	return out, out.Validate()
}

// LoadFixtures reads and validates a YAML fixture file.
func LoadFixtures(path string) (FixtureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FixtureSet{}, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}

	var set FixtureSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return FixtureSet{}, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	if err := set.Validate(); err != nil {
		return FixtureSet{}, fmt.Errorf("invalid fixtures %s: %w", path, err)
	}

	return set, nil
}

// WriteFixtures writes set to path as YAML.
func WriteFixtures(path string, set FixtureSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode fixtures: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fixtures %s: %w", path, err)
	}
	return nil
}

// Evaluate computes c on gen. The generator register is overwritten.
func Evaluate(gen *qrnoise.Generator, c Case) (int, error) {
	switch c.Kind {
	case KindRand:
		gen.SeedQR(c.Seed, c.Q, c.R)
		return gen.Rand(), nil
	case KindVNoise:
		return gen.VNoise(c.Seed, c.Q, c.R, c.Freq), nil
	case KindFBM:
		return gen.FBM(c.Seed, c.Q, c.R, c.Freq, c.Oct), nil
	default:
		return 0, fmt.Errorf("case %q: %w: %q", c.Name, ErrUnknownKind, c.Kind)
	}
}
