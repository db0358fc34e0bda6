package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_MountReplacesSession(t *testing.T) {
	c := newTestController(&fakeCatalog{items: sampleItems()})
	assert.Nil(t, c.Current())

	first := c.Mount()
	require.True(t, first.Apply(first.Load()))

	second := c.Mount()
	assert.NotEqual(t, first.ID(), second.ID())
	assert.True(t, first.Closed())
	assert.False(t, second.Closed())
	assert.Same(t, second, c.Current())
	assert.True(t, second.State().Pending(), "a new mount starts pending")
}

func TestController_StaleResultDiscarded(t *testing.T) {
	c := newTestController(&fakeCatalog{items: sampleItems()})

	first := c.Mount()
	res := first.Load()
	second := c.Mount()

	assert.False(t, first.Apply(res))
	assert.True(t, second.State().Pending())
}

func TestController_Close(t *testing.T) {
	c := newTestController(&fakeCatalog{})
	s := c.Mount()

	c.Close()
	c.Close()
	assert.True(t, s.Closed())

	late := c.Mount()
	assert.True(t, late.Closed())
}
