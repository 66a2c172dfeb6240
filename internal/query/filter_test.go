package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/apperr"
)

func TestDateRange_BothBounds(t *testing.T) {
	pred, err := DateRange("2024-03-10", "2024-03-12")
	require.NoError(t, err)
	require.Len(t, pred, 1)

	cond := pred[0]
	assert.Equal(t, FieldCreatedAt, cond.Field)
	assert.Equal(t, OpBetween, cond.Op)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), cond.Value)
	assert.Equal(t, time.Date(2024, 3, 12, 23, 59, 59, 999_000_000, time.UTC), cond.Upper)
}

func TestDateRange_StartOnly(t *testing.T) {
	pred, err := DateRange("2024-03-10", "")
	require.NoError(t, err)
	require.Len(t, pred, 1)

	cond := pred[0]
	assert.Equal(t, OpGTE, cond.Op)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), cond.Value)
	assert.Nil(t, cond.Upper)
}

func TestDateRange_EndOnly(t *testing.T) {
	pred, err := DateRange("", "2024-03-12")
	require.NoError(t, err)
	require.Len(t, pred, 1)

	cond := pred[0]
	assert.Equal(t, OpLTE, cond.Op)
	assert.Equal(t, time.Date(2024, 3, 12, 23, 59, 59, 999_000_000, time.UTC), cond.Value)
}

func TestDateRange_Empty(t *testing.T) {
	pred, err := DateRange("", "")
	require.NoError(t, err)
	assert.Empty(t, pred)
}

func TestDateRange_SameDay(t *testing.T) {
	// Equal start and end covers the full day, not an empty interval.
	pred, err := DateRange("2024-03-10", "2024-03-10")
	require.NoError(t, err)
	require.Len(t, pred, 1)
	assert.Equal(t, OpBetween, pred[0].Op)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), pred[0].Value)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, time.UTC), pred[0].Upper)
}

func TestDateRange_EndBeforeStart(t *testing.T) {
	_, err := DateRange("2024-03-12", "2024-03-10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestDateRange_RFC3339Normalization(t *testing.T) {
	// A timestamp inside the day snaps to the whole UTC day.
	pred, err := DateRange("2024-03-10T15:04:05Z", "2024-03-10T01:00:00Z")
	require.NoError(t, err)
	require.Len(t, pred, 1)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), pred[0].Value)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, time.UTC), pred[0].Upper)
}

func TestDateRange_Malformed(t *testing.T) {
	for _, s := range []string{"not-a-date", "2024-13-40", "10/03/2024"} {
		_, err := DateRange(s, "")
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "fromDate=%q", s)

		_, err = DateRange("", s)
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "toDate=%q", s)
	}
}

func TestSearch_WrapsWildcards(t *testing.T) {
	cond := Search("title", "beatles")
	assert.Equal(t, "title", cond.Field)
	assert.Equal(t, OpILike, cond.Op)
	assert.Equal(t, "%beatles%", cond.Value)
}

func TestEq(t *testing.T) {
	cond := Eq("isFavorite", true)
	assert.Equal(t, OpEq, cond.Op)
	assert.Equal(t, true, cond.Value)
}

func TestAfter(t *testing.T) {
	cond := After("id", "0190")
	assert.Equal(t, OpGT, cond.Op)
	assert.Equal(t, "0190", cond.Value)
}
