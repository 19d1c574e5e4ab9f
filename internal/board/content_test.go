package board

import (
	"strings"
	"testing"
	"unicode/utf8"

	"afom-board-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContent(t *testing.T) {
	t.Run("truncates to fifty characters", func(t *testing.T) {
		raw := strings.Repeat("a", 80)
		got, err := NormalizeContent(raw)
		require.NoError(t, err)
		assert.Equal(t, raw[:50], got)
	})

	t.Run("counts accented characters once", func(t *testing.T) {
		raw := strings.Repeat("é", 60)
		got, err := NormalizeContent(raw)
		require.NoError(t, err)
		assert.Equal(t, 50, utf8.RuneCountInString(got))
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("trims", func(t *testing.T) {
		got, err := NormalizeContent("  équipe soudée  ")
		require.NoError(t, err)
		assert.Equal(t, "équipe soudée", got)
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := NormalizeContent("   ")
		assert.ErrorIs(t, err, ErrEmptyContent)
		assert.ErrorIs(t, err, entity.ErrValidation)
	})
}

func TestNormalizeAuthor(t *testing.T) {
	assert.Equal(t, AnonymousAuthor, NormalizeAuthor("", false))
	assert.Equal(t, AnonymousAuthor, NormalizeAuthor("  ", false))
	assert.Equal(t, AnonymousAuthor, NormalizeAuthor("Camille", true))
	assert.Equal(t, "Camille", NormalizeAuthor(" Camille ", false))
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket(" Menaces ")
	require.NoError(t, err)
	assert.Equal(t, entity.BucketMenaces, b)

	b, err = ParseBucket("archive")
	require.NoError(t, err)
	assert.Equal(t, entity.BucketArchive, b)

	_, err = ParseBucket("threats")
	assert.ErrorIs(t, err, ErrInvalidBucket)

	_, err = ParseContentBucket("archive")
	assert.ErrorIs(t, err, ErrNotContentBucket)
}

func TestNormalizeSessionToken(t *testing.T) {
	got, err := NormalizeSessionToken(" ab12cd ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", got)

	_, err = NormalizeSessionToken("")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = NormalizeSessionToken(strings.Repeat("x", 65))
	assert.ErrorIs(t, err, ErrSessionTokenTooLong)
}
