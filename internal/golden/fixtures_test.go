package golden

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/hexnoise/pkg/qrnoise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceFixtures = filepath.Join("..", "..", "testdata", "golden.yaml")

func TestReferenceFixturesPass(t *testing.T) {
	set, err := LoadFixtures(referenceFixtures)
	require.NoError(t, err)
	require.NotEmpty(t, set.Cases)

	gen := qrnoise.NewGenerator()
	var outcomes []Outcome
	for _, c := range set.Cases {
		got, err := Evaluate(gen, c)
		require.NoError(t, err, c.String())
		outcomes = append(outcomes, Outcome{Case: c, Got: got})
	}

	report := NewReport(outcomes)
	assert.NoError(t, report.Err())
	assert.Equal(t, len(set.Cases), report.Passed)
}

func TestReferenceFixturesRegression(t *testing.T) {
	set, err := LoadFixtures(referenceFixtures)
	require.NoError(t, err)

	c, err := set.Find("regression")
	require.NoError(t, err)
	assert.Equal(t, Case{Name: "regression", Kind: KindFBM, Seed: 303, Freq: 4, Oct: 1, Want: 2964}, c)
}

func TestFixtureSet_Find(t *testing.T) {
	set := FixtureSet{Cases: []Case{{Name: "a", Kind: KindRand}}}

	_, err := set.Find("missing")
	assert.True(t, errors.Is(err, ErrFixtureNotFound))
}

func TestFixtureSet_Select(t *testing.T) {
	set := FixtureSet{Description: "d", Cases: []Case{
		{Name: "a", Kind: KindRand},
		{Name: "b", Kind: KindVNoise},
		{Name: "c", Kind: KindFBM},
	}}

	all, err := set.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, set, all)

	sub, err := set.Select([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, "d", sub.Description)
	require.Len(t, sub.Cases, 2)
	assert.Equal(t, "c", sub.Cases[0].Name)
	assert.Equal(t, "a", sub.Cases[1].Name)

	_, err = set.Select([]string{"a", "missing"})
	assert.ErrorIs(t, err, ErrFixtureNotFound)

	_, err = set.Select([]string{"a", "a"})
	assert.Error(t, err)
}

func TestFixtureSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cases   []Case
		wantErr bool
	}{
		{"ok", []Case{{Name: "a", Kind: KindRand}, {Name: "b", Kind: KindFBM}}, false},
		{"empty name", []Case{{Kind: KindRand}}, true},
		{"duplicate", []Case{{Name: "a", Kind: KindRand}, {Name: "a", Kind: KindVNoise}}, true},
		{"unknown kind", []Case{{Name: "a", Kind: "perlin"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FixtureSet{Cases: tt.cases}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteFixtures_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	set := FixtureSet{
		Description: "negative coordinates",
		Cases: []Case{
			{Name: "edge", Kind: KindVNoise, Seed: -1, Q: -2147483648, R: 2147483647, Freq: 64, Want: 1},
		},
	}

	require.NoError(t, WriteFixtures(path, set))

	loaded, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, set, loaded)
}

func TestLoadFixtures_Errors(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cases: [\n"), 0o644))
	_, err = LoadFixtures(bad)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, WriteFixtures(empty, FixtureSet{}))
	set, err := LoadFixtures(empty)
	require.NoError(t, err)
	assert.Empty(t, set.Cases)
}

func TestEvaluate_UnknownKind(t *testing.T) {
	_, err := Evaluate(qrnoise.NewGenerator(), Case{Name: "x", Kind: "simplex"})
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestEvaluate_RandIgnoresFrequency(t *testing.T) {
	gen := qrnoise.NewGenerator()
	a, err := Evaluate(gen, Case{Name: "a", Kind: KindRand, Seed: 303})
	require.NoError(t, err)
	b, err := Evaluate(gen, Case{Name: "b", Kind: KindRand, Seed: 303, Freq: 16, Oct: 3})
	require.NoError(t, err)
	assert.Equal(t, 30632, a)
	assert.Equal(t, a, b)
}

func TestReport(t *testing.T) {
	outcomes := []Outcome{
		{Case: Case{Name: "z", Want: 1}, Got: 2},
		{Case: Case{Name: "a", Want: 5}, Got: 5},
		{Case: Case{Name: "m", Want: 0}, Got: 7},
	}

	r := NewReport(outcomes)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.Passed)
	require.Len(t, r.Mismatches, 2)
	assert.Equal(t, "m", r.Mismatches[0].Case.Name)

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch))
	assert.Contains(t, err.Error(), "m, z")

	assert.NoError(t, NewReport(outcomes[1:2]).Err())
}

func TestUpdate(t *testing.T) {
	set := FixtureSet{Cases: []Case{{Name: "a", Want: 1}, {Name: "b", Want: 2}}}
	updated := Update(set, []Outcome{{Case: Case{Name: "b"}, Got: 9}})

	assert.Equal(t, 1, updated.Cases[0].Want)
	assert.Equal(t, 9, updated.Cases[1].Want)
	assert.Equal(t, 2, set.Cases[1].Want)
}
