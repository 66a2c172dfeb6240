package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStampCreate(t *testing.T) {
	var f Fields
	f.StampCreate("alice")

	assert.Equal(t, "alice", f.CreatedBy)
	assert.Empty(t, f.UpdatedBy)
	assert.False(t, f.DeletedAt.Valid)
}

func TestStampUpdate(t *testing.T) {
	var f Fields
	f.StampCreate("alice")
	f.StampUpdate("bob")

	assert.Equal(t, "alice", f.CreatedBy)
	assert.Equal(t, "bob", f.UpdatedBy)
}

func TestStampDelete(t *testing.T) {
	var f Fields
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f.StampDelete("carol", at)

	assert.True(t, f.DeletedAt.Valid)
	assert.Equal(t, at, f.DeletedAt.Time)
	assert.Equal(t, "carol", f.DeletedBy)
}
