package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog(t *testing.T) {
	t.Run("orders by score and returns copies", func(t *testing.T) {
		c := NewMemoryCatalogFrom([]Lawyer{
			{ID: 2, Name: "B", Score: 70},
			{ID: 1, Name: "A", Score: 90},
			{ID: 3, Name: "C", Score: 90},
		}, nil)

		got, err := c.Lawyers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C", "B"}, lawyerNames(got))

		got[0].Name = "mutated"
		again, _ := c.Lawyers(context.Background())
		assert.Equal(t, "A", again[0].Name)
	})

	t.Run("seed file replaces the lawyers and keeps default NGOs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
lawyers:
  - id: 10
    name: Adv. Meera Iyer
    score: 88
    expertise: Family Law
    location: Chennai
    state: Tamil Nadu
    language: Tamil
    available: Immediate
    exp: 9 yrs
    rating: 4.7
`), 0o600))

		c, err := LoadSeedFile(path)
		require.NoError(t, err)

		lawyers, _ := c.Lawyers(context.Background())
		require.Len(t, lawyers, 1)
		assert.Equal(t, "9 yrs", lawyers[0].Experience)
		ngos, _ := c.NGOs(context.Background())
		assert.Len(t, ngos, len(defaultNGOs))
	})

	t.Run("broken seed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lawyers: [ {"), 0o600))
		_, err := LoadSeedFile(path)
		assert.Error(t, err)
	})

	t.Run("missing seed file", func(t *testing.T) {
		_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
