// Package tabs contains the chat, search and visualize screens.
//
// Allowed here:
// - per-screen input handling, request controllers and layout trees
// - mapping request state to rendered panes
//
// Not allowed here:
// - shared app routing logic (core) or low-level drawing primitives (widgets)
// - HTTP details beyond the small client interfaces declared in tab.go
package tabs
