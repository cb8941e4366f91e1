// Package dialog defines the domain model for branching conversations:
// nodes, choices, and the trees that own them.
//
// A Tree is an arena: it owns every Node created through it and hands out
// stable IDs. Structural back-references (parent, incoming edges) are held
// as IDs and resolved through the owning tree, never as owning pointers.
// The Navigator (internal/runtime) walks a tree read-mostly; structural
// edits and active sessions must not overlap; the caller is the single
// editor at a time.
package dialog
