package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaryCachePutGetInvalidate(t *testing.T) {
	c := NewDiaryCache(time.Minute, time.Minute)
	defer c.Close()

	_, _, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, []byte("pdf"), "DIARY_1.pdf")
	data, name, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, []byte("pdf"), data)
	assert.Equal(t, "DIARY_1.pdf", name)
	assert.Equal(t, 1, c.Len())

	c.Invalidate(1)
	_, _, ok = c.Get(1)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestDiaryCacheExpiry(t *testing.T) {
	c := NewDiaryCache(20*time.Millisecond, time.Hour)
	defer c.Close()

	c.Put(7, []byte("pdf"), "DIARY_7.pdf")
	time.Sleep(40 * time.Millisecond)

	_, _, ok := c.Get(7)
	assert.False(t, ok, "expired entry must not be served")
}

func TestDiaryCacheSweeperEvicts(t *testing.T) {
	c := NewDiaryCache(10*time.Millisecond, 10*time.Millisecond)
	defer c.Close()

	c.Put(1, []byte("a"), "a.pdf")
	c.Put(2, []byte("b"), "b.pdf")

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}
