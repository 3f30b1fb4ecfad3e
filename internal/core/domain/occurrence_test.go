package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOccurrenceID tests identity formatting
func TestOccurrenceID(t *testing.T) {
	t.Run("formats sequence number", func(t *testing.T) {
		assert.Equal(t, "occ-000001", OccurrenceID(1))
		assert.Equal(t, "occ-000042", OccurrenceID(42))
	})

	t.Run("distinct sequences yield distinct identities", func(t *testing.T) {
		assert.NotEqual(t, OccurrenceID(1), OccurrenceID(2))
	})

	t.Run("large sequences do not collide", func(t *testing.T) {
		assert.NotEqual(t, OccurrenceID(1000000), OccurrenceID(10000001))
	})
}

// TestOccurrenceStatus_String tests status names
func TestOccurrenceStatus_String(t *testing.T) {
	assert.Equal(t, "pending", OccurrencePending.String())
	assert.Equal(t, "consumed", OccurrenceConsumed.String())
	assert.Equal(t, "possibly-stale", OccurrencePossiblyStale.String())
	assert.Equal(t, "unknown", OccurrenceStatus(99).String())
}

// TestOccurrence_Fields tests Occurrence structure fields
func TestOccurrence_Fields(t *testing.T) {
	occ := Occurrence{
		ID:             OccurrenceID(7),
		FilePath:       "/docs/letter.docx",
		ParagraphIndex: 3,
		Start:          6,
		End:            11,
		MatchText:      "World",
		ContextBefore:  "Hello ",
		ContextAfter:   "!",
	}

	assert.Equal(t, "occ-000007", occ.ID)
	assert.Equal(t, "/docs/letter.docx", occ.FilePath)
	assert.Equal(t, 3, occ.ParagraphIndex)
	assert.Equal(t, 6, occ.Start)
	assert.Equal(t, 11, occ.End)
	assert.Equal(t, "World", occ.MatchText)
	assert.Equal(t, "Hello ", occ.ContextBefore)
	assert.Equal(t, "!", occ.ContextAfter)
}
