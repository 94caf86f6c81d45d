package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCache_PutGet(t *testing.T) {
	c, err := NewFormatCache(2)
	require.NoError(t, err)

	c.Put("a@b.com", "email")
	c.Put("plain", "")

	got, ok := c.Get("a@b.com")
	assert.True(t, ok)
	assert.Equal(t, "email", got)

	got, ok = c.Get("plain")
	assert.True(t, ok, "negative results are cached")
	assert.Empty(t, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestFormatCache_Evicts(t *testing.T) {
	c, err := NewFormatCache(2)
	require.NoError(t, err)

	c.Put("one", "")
	c.Put("two", "")
	c.Put("three", "")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("one")
	assert.False(t, ok, "oldest entry should be evicted")
}

func TestNewFormatCache_InvalidSize(t *testing.T) {
	_, err := NewFormatCache(0)
	assert.Error(t, err)
}
