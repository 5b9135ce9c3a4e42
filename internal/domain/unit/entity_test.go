//go:build unit

package unit_test

import (
	"testing"

	"cabinstay/internal/domain/unit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnit(t *testing.T) {
	t.Run("valid unit", func(t *testing.T) {
		u, err := unit.NewUnit(uuid.New(), " CEDAR-01 ", " Cedar Cabin ", 10000, 15000, true)
		require.NoError(t, err)
		assert.Equal(t, "CEDAR-01", u.Code())
		assert.Equal(t, "Cedar Cabin", u.Name())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := unit.NewUnit(uuid.New(), "C1", "   ", 10000, 15000, true)
		require.ErrorIs(t, err, unit.ErrEmptyUnitName)
	})

	t.Run("negative rates", func(t *testing.T) {
		_, err := unit.NewUnit(uuid.New(), "C1", "Cabin", -1, 15000, true)
		require.ErrorIs(t, err, unit.ErrNegativeRate)
		_, err = unit.NewUnit(uuid.New(), "C1", "Cabin", 10000, -1, true)
		require.ErrorIs(t, err, unit.ErrNegativeRate)
	})
}

func TestNewRef(t *testing.T) {
	t.Run("needs an id or a code", func(t *testing.T) {
		_, err := unit.NewRef(uuid.Nil, "  ")
		require.ErrorIs(t, err, unit.ErrEmptyUnitRef)
	})

	t.Run("code alone is enough", func(t *testing.T) {
		ref, err := unit.NewRef(uuid.Nil, "CEDAR-01")
		require.NoError(t, err)
		assert.Equal(t, "CEDAR-01", ref.String())
	})
}

func TestRefMatches(t *testing.T) {
	id := uuid.New()
	ref, err := unit.NewRef(id, "CEDAR-01")
	require.NoError(t, err)

	t.Run("matches by id", func(t *testing.T) {
		assert.True(t, ref.Matches(id, ""))
		assert.False(t, ref.Matches(uuid.New(), ""))
	})

	t.Run("matches legacy rows by code, case-insensitively", func(t *testing.T) {
		assert.True(t, ref.Matches(uuid.Nil, "cedar-01"))
		assert.False(t, ref.Matches(uuid.Nil, "PINE-02"))
	})

	t.Run("either key matching counts", func(t *testing.T) {
		// Row id differs but the legacy code agrees.
		assert.True(t, ref.Matches(uuid.New(), "CEDAR-01"))
	})

	t.Run("empty keys never match", func(t *testing.T) {
		codeOnly, err := unit.NewRef(uuid.Nil, "CEDAR-01")
		require.NoError(t, err)
		assert.False(t, codeOnly.Matches(uuid.New(), ""))
	})
}
