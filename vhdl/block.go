// Package vhdl lowers the cerata structural IR into VHDL source text: entity
// and component declarations, architecture bodies, and instance port maps
// (spec.md §4.7).
package vhdl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cerata/utils"
)

// A Line is one row of space-separated tokens in a Block.
type Line []string

// A Block is a list of Lines at a single indent level. Column-alignment is
// applied per Block when rendering: every column but the last in each Line
// is padded to the widest token in that column across the Block, using
// lipgloss.JoinHorizontal to compose the padded cells -- the same
// column-layout primitive the teacher's debugger TUI uses for its register
// panes (SPEC_FULL.md §6.1).
type Block struct {
	Indent int
	Lines  []Line
}

// NewBlock constructs an empty Block at the given indent level.
func NewBlock(indent int) *Block {
	return &Block{Indent: indent}
}

// Add appends a new Line built from tokens -- the `<<` operator of the
// source (spec.md §4.7).
func (b *Block) Add(tokens ...string) *Block {
	b.Lines = append(b.Lines, Line(tokens))
	return b
}

// AppendToLast concatenates suffix directly onto the last token of the last
// Line, with no separating space -- the `<<=` operator of the source, used
// for trailing semicolons.
func (b *Block) AppendToLast(suffix string) *Block {
	n := len(b.Lines)
	if n == 0 {
		return b
	}
	line := b.Lines[n-1]
	if len(line) == 0 {
		return b
	}
	line[len(line)-1] += suffix
	return b
}

// Empty reports whether the block has no lines.
func (b *Block) Empty() bool { return len(b.Lines) == 0 }

// Render produces the block's text: each column but the last padded to a
// common width, lines joined with newlines and prefixed by two spaces per
// indent level.
func (b *Block) Render() string {
	if len(b.Lines) == 0 {
		return ""
	}

	numCols := 0
	for _, l := range b.Lines {
		if len(l) > numCols {
			numCols = len(l)
		}
	}
	colWidth := make([]int, numCols)
	for _, l := range b.Lines {
		for i, tok := range l {
			if i == len(l)-1 {
				continue // never pad a line's final column
			}
			if w := utils.DisplayWidth(tok); w > colWidth[i] {
				colWidth[i] = w
			}
		}
	}

	indentStr := strings.Repeat("  ", b.Indent)
	rows := make([]string, len(b.Lines))
	for li, l := range b.Lines {
		cells := make([]string, 0, len(l))
		for i, tok := range l {
			if i < len(l)-1 {
				cells = append(cells, utils.Pad(tok, colWidth[i])+" ")
			} else {
				cells = append(cells, tok)
			}
		}
		rows[li] = indentStr + lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return strings.Join(rows, "\n")
}

// A MultiBlock concatenates Blocks, each rendered independently and then
// joined -- used to assemble a declaration's generic/port sections, or an
// architecture's signal/instance sections, out of independently-aligned
// pieces.
type MultiBlock struct {
	Blocks []*Block
}

// NewMultiBlock constructs a MultiBlock from zero or more Blocks.
func NewMultiBlock(blocks ...*Block) *MultiBlock {
	return &MultiBlock{Blocks: blocks}
}

// Append adds a Block to the MultiBlock.
func (mb *MultiBlock) Append(b *Block) *MultiBlock {
	mb.Blocks = append(mb.Blocks, b)
	return mb
}

// Render concatenates every non-empty Block's rendered text, one per line
// group, separated by newlines.
func (mb *MultiBlock) Render() string {
	var parts []string
	for _, b := range mb.Blocks {
		if b == nil || b.Empty() {
			continue
		}
		parts = append(parts, b.Render())
	}
	return strings.Join(parts, "\n")
}
