package cerata

import "github.com/davecgh/go-spew/spew"

// dumpConfig matches the teacher's ad-hoc spew.Dump debugging style, but
// disables Stringer/error methods and bounds MaxDepth so dumping a graph with
// back-references (Node -> Edge -> Node) can't recurse forever.
var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	MaxDepth:                8,
}

// Dump renders v as an indented, human-readable debug string. It walks
// every field, including the unexported edge lists of a Node, down to
// dumpConfig's MaxDepth; anything nested deeper is elided.
func Dump(v any) string {
	return dumpConfig.Sdump(v)
}
