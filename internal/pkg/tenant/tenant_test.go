package tenant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(
		&Site{ID: "sweepsfan", Name: "Sweeps Fan"},
		&Site{ID: "prizepal", Name: "Prize Pal"},
	)
	require.NoError(t, err)

	t.Run("keeps configured order", func(t *testing.T) {
		sites := r.List()
		require.Len(t, sites, 2)
		assert.Equal(t, "sweepsfan", sites[0].ID)
		assert.Equal(t, "prizepal", sites[1].ID)
	})

	t.Run("known site", func(t *testing.T) {
		s, err := r.Get("prizepal")
		require.NoError(t, err)
		assert.Equal(t, "Prize Pal", s.Name)
	})

	t.Run("unknown site", func(t *testing.T) {
		_, err := r.DB("nope")
		assert.True(t, errors.Is(err, ErrUnknownSite))

		_, err = r.Storage("nope")
		assert.True(t, errors.Is(err, ErrUnknownSite))
	})
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(&Site{ID: "a"}, &Site{ID: "a"})
	assert.Error(t, err)

	_, err = NewRegistry(&Site{})
	assert.Error(t, err)
}

var _ DBResolver = (*Registry)(nil)
