// Package lattice models the parameter space of a case ensemble.
//
// A Registry holds dimensions in registration order. Scalar dimensions carry
// one name and a list of values; grouped dimensions carry K member names and a
// list of K-tuples that are always applied together. Every successful add
// rebuilds the lattice from scratch:
//
//   - ModeFill: the Cartesian product of all dimensions. The first registered
//     dimension varies fastest, so a=[1,2], b=[10,20] yields
//     (1,10) (2,10) (1,20) (2,20).
//   - ModeZip: position-wise pairing of dimensions that must share one
//     cardinality, so the same inputs yield (1,10) (2,20).
//
// The lattice can be narrowed with a boolean mask. Filtering is irreversible;
// the next add discards it and rebuilds the full lattice.
//
// Errors:
//
//   - ErrDuplicateName: a name or group label is already registered.
//   - ErrConflictingArguments: values and bounds both given, or neither.
//   - ErrArityMismatch: a group tuple with the wrong component count.
//   - ErrCardinalityMismatch: unequal dimension sizes in ModeZip.
//   - ErrLengthMismatch: a filter mask of the wrong length.
//   - ErrLatticeNotReady: the lattice was requested with fewer than 2 dimensions.
//
// Failed calls leave the registry in its last valid state.
package lattice
