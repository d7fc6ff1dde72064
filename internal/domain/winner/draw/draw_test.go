package draw

import (
	entryModel "sweeps_admin/internal/domain/entry/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(emails ...string) []entryModel.Entry {
	out := make([]entryModel.Entry, len(emails))
	for i, e := range emails {
		out[i] = entryModel.Entry{ID: string(rune('a' + i)), Email: e}
	}
	return out
}

func emailsOf(es []entryModel.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Email
	}
	return out
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name    string
		entries []entryModel.Entry
		winners []string
		want    []string
	}{
		{"no winners keeps everything in order", entries("a@x", "b@x", "c@x"), nil, []string{"a@x", "b@x", "c@x"}},
		{"excludes prior winners", entries("a@x", "b@x", "c@x"), []string{"b@x"}, []string{"a@x", "c@x"}},
		{"excludes every entry of a winning email", entries("a@x", "b@x", "a@x"), []string{"a@x"}, []string{"b@x"}},
		{"all entrants already won", entries("a@x", "a@x"), []string{"a@x"}, []string{}},
		{"no entries", nil, []string{"a@x"}, []string{}},
		{"winner emails outside the entry set are ignored", entries("a@x"), []string{"z@x"}, []string{"a@x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eligible(tt.entries, tt.winners)
			assert.Equal(t, tt.want, emailsOf(got))
		})
	}
}

func TestEligibleDoesNotMutateInput(t *testing.T) {
	in := entries("a@x", "b@x")
	_ = Eligible(in, []string{"a@x"})
	assert.Equal(t, []string{"a@x", "b@x"}, emailsOf(in))
}

func TestPickEmptyPanics(t *testing.T) {
	s := NewSelector()
	assert.Panics(t, func() { s.Pick(nil) })
	assert.Panics(t, func() { s.Pick([]entryModel.Entry{}) })
}

func TestPickSingle(t *testing.T) {
	s := NewSelector()
	only := entries("solo@x")
	for i := 0; i < 10; i++ {
		assert.Equal(t, "solo@x", s.Pick(only).Email)
	}
}

func TestPickIsUniform(t *testing.T) {
	s := NewSeededSelector(42, 7)
	pool := entries("a@x", "b@x", "c@x", "d@x")

	const trials = 40000
	counts := make(map[string]int, len(pool))
	for i := 0; i < trials; i++ {
		counts[s.Pick(pool).Email]++
	}

	require.Len(t, counts, len(pool))
	expected := float64(trials) / float64(len(pool))
	for email, n := range counts {
		// 每个元素的频率应接近 1/N，容差 5%
		assert.InDelta(t, expected, float64(n), expected*0.05, "email %s picked %d times", email, n)
	}
}

func TestPickNeverRepeatsExcludedWinner(t *testing.T) {
	s := NewSelector()
	pool := entries("a@x", "b@x", "c@x")

	first := s.Pick(Eligible(pool, nil))
	for i := 0; i < 200; i++ {
		next := s.Pick(Eligible(pool, []string{first.Email}))
		assert.NotEqual(t, first.Email, next.Email)
	}
}
