package vhdl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockRenderAlignsColumnsExceptLast(t *testing.T) {
	b := NewBlock(1)
	b.Add("clk", ":", "in", "std_logic")
	b.Add("reset_n", ":", "in", "std_logic")

	rendered := b.Render()
	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, 2)

	// The first column is padded to the widest token ("reset_n"), so the
	// second column (":") lines up across both rows.
	firstColon := strings.Index(lines[0], ":")
	secondColon := strings.Index(lines[1], ":")
	assert.Equal(t, firstColon, secondColon)
}

func TestBlockEmpty(t *testing.T) {
	b := NewBlock(0)
	assert.True(t, b.Empty())
	assert.Equal(t, "", b.Render())
}

func TestAppendToLast(t *testing.T) {
	b := NewBlock(0)
	b.Add("a", "b")
	b.AppendToLast(";")
	assert.Equal(t, "b;", b.Lines[0][1])
}

func TestMultiBlockSkipsEmptyBlocks(t *testing.T) {
	mb := NewMultiBlock(NewBlock(0), nil)
	full := NewBlock(0)
	full.Add("x")
	mb.Append(full)
	assert.Equal(t, "x", mb.Render())
}
