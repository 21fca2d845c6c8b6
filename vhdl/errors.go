package vhdl

import (
	"fmt"

	core "cerata/cerata"
)

// newVHDLError wraps a fatal, entity-identifying lowering failure as a
// core.CerataError, tagged TypeError since every failure in this package
// stems from a Type that cannot be declared or flattened as VHDL expects.
func newVHDLError(entity, format string, args ...any) error {
	return &core.CerataError{Kind: core.TypeError, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}
