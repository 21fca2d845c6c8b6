package cerata

import "fmt"

// An ErrorKind tags a CerataError with the taxonomy described for the
// generator: what part of the pipeline detected the invariant violation.
type ErrorKind int

const (
	// ConnectivityError covers a null endpoint on Connect, a Connect between
	// distinct Types with no registered TypeMapper, or an illegal graph
	// operation such as adding a non-Instance child.
	ConnectivityError ErrorKind = iota
	// TypeError covers flattening an abstract type with undefined width, or
	// a NodeArray whose size Node is nil.
	TypeError
	// IndexError covers NodeArray index out of bounds or a flat index past
	// the end of a flattened type.
	IndexError
	// PoolError covers duplicate type registration under the same name with
	// a structurally different Type.
	PoolError
	// TransformError covers a port-to-port edge whose endpoints' parent
	// graphs cannot be determined.
	TransformError
)

func (k ErrorKind) String() string {
	switch k {
	case ConnectivityError:
		return "ConnectivityError"
	case TypeError:
		return "TypeError"
	case IndexError:
		return "IndexError"
	case PoolError:
		return "PoolError"
	case TransformError:
		return "TransformError"
	default:
		return "UnknownError"
	}
}

// A CerataError is a fatal, named-entity-identifying failure. The library
// does not attempt recovery from one of these; per spec, partial output must
// be discarded by the caller.
type CerataError struct {
	Kind   ErrorKind
	Entity string // name of the offending Type/Node/Graph/etc.
	Msg    string
}

func (e *CerataError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Msg)
}

func newErr(kind ErrorKind, entity, format string, args ...any) error {
	return &CerataError{Kind: kind, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}
