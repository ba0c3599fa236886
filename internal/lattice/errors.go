package lattice

import "errors"

var (
	// ErrDuplicateName indicates a parameter name or group label is already registered.
	ErrDuplicateName = errors.New("lattice: duplicate parameter name")
	// ErrConflictingArguments indicates mutually exclusive inputs were supplied together, or neither was.
	ErrConflictingArguments = errors.New("lattice: conflicting arguments")
	// ErrArityMismatch indicates a group value tuple does not match the number of member names.
	ErrArityMismatch = errors.New("lattice: group arity mismatch")
	// ErrCardinalityMismatch indicates dimensions of unequal length in no-fill mode.
	ErrCardinalityMismatch = errors.New("lattice: dimension cardinality mismatch")
	// ErrLengthMismatch indicates a mask or suffix list does not match the lattice size.
	ErrLengthMismatch = errors.New("lattice: length mismatch")
	// ErrLatticeNotReady indicates fewer than two dimensions have been registered.
	ErrLatticeNotReady = errors.New("lattice: at least 2 dimensions are required")
	// ErrEmptyDimension indicates a dimension without any values or names.
	ErrEmptyDimension = errors.New("lattice: dimension is empty")
	// ErrInvalidBounds indicates a bounds specification that cannot produce samples.
	ErrInvalidBounds = errors.New("lattice: invalid bounds")
)
