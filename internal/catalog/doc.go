// Package catalog holds the fixed set of specialist assistant profiles
// the guide engine routes users toward.
//
// The catalog is immutable after construction and iterates in
// registration order, which intent scoring relies on for deterministic
// tie-breaking. Builtin returns the five Dentalteam assistants; every
// other package references agents by their catalog ID.
package catalog
