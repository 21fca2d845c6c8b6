package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdentifier(t *testing.T) {
	assert.Equal(t, "_", SanitizeIdentifier(""))
	assert.Equal(t, "_1lane", SanitizeIdentifier("1lane"))
	assert.Equal(t, "a_b", SanitizeIdentifier("a.b"))
	assert.Equal(t, "entity_i", SanitizeIdentifier("entity"))
	assert.Equal(t, "Entity_i", SanitizeIdentifier("Entity"), "reserved-word check is case-insensitive")
	assert.Equal(t, "clk", SanitizeIdentifier("clk"))
}

func TestPadUsesDisplayWidth(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "abcde", Pad("abcde", 3), "already wide enough: unchanged")
}

func TestDisplayWidthASCII(t *testing.T) {
	assert.Equal(t, 3, DisplayWidth("abc"))
}
