// Package layout assigns every type graph node an encoding plan and
// defines the cross-boundary calling convention the generated code
// follows.
//
// The plan is derived entirely from the node kind: compatibility-registry
// externals pass through their fixed codecs, indirection nodes encode by
// reference to the referent's codec, and everything else is encoded
// inline. Recomputing plans from the same graph always yields the same
// assignment.
//
// Call convention: arguments and return value are serialized independently
// into the caller's sandbox memory and passed as a PackedRef (offset plus
// length in one uint64). The callee copies the referenced bytes into its
// own memory before decoding and then discharges its single release
// obligation via the counterpart's free export. Neither side ever holds a
// usable pointer into the other's address space.
package layout
