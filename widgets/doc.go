// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, lists, popup overlay compositor)
//
// Not allowed here:
// - key handling, request state, scope logic, or tab policy
package widgets
