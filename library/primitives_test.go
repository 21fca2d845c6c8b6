package library

import (
	"testing"

	core "cerata/cerata"
	"github.com/stretchr/testify/assert"
)

func TestGetBuildsAndCachesByName(t *testing.T) {
	ctx := core.NewContext()

	c1, err := Get(ctx, "StreamSlice")
	assert.NoError(t, err)
	assert.Equal(t, "StreamSlice", c1.Name())

	c2, err := Get(ctx, "StreamSlice")
	assert.NoError(t, err)
	assert.Same(t, c1, c2, "second request returns the cached component")
}

func TestGetUnknownPrimitive(t *testing.T) {
	ctx := core.NewContext()
	_, err := Get(ctx, "NoSuchThing")
	assert.Error(t, err)
}

func TestStreamBufferHasDepthGeneric(t *testing.T) {
	ctx := core.NewContext()
	c, err := Get(ctx, "StreamBuffer")
	assert.NoError(t, err)

	var names []string
	for _, p := range c.Parameters() {
		names = append(names, p.Name())
	}
	assert.Contains(t, names, "DataWidth")
	assert.Contains(t, names, "Depth")
}
