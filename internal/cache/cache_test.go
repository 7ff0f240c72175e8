package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("product:M100", "value")

	got, found := c.GetValue("product:M100")
	require.True(t, found)
	assert.Equal(t, "value", got)

	_, found = c.GetValue("product:M999")
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)

	c.Set("short", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := c.GetValue("short")
	assert.False(t, found)
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)

	c.Set("products:list", 1)
	c.Set("products:item:M100", 2)
	c.Set("reports:brands", 3)

	c.DeleteByPrefix("products:")

	_, found := c.GetValue("products:list")
	assert.False(t, found)
	_, found = c.GetValue("products:item:M100")
	assert.False(t, found)
	_, found = c.GetValue("reports:brands")
	assert.True(t, found)
}

func TestClearAndSize(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
