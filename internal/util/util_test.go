package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, "x", StringToNullString("x").String)

	assert.False(t, TimeToNullTime(time.Time{}).Valid)
	now := time.Now()
	assert.Equal(t, now, TimeToNullTime(now).Time)

	assert.False(t, IntToNullInt64(0).Valid)
	assert.Equal(t, int64(60), IntToNullInt64(60).Int64)
}
