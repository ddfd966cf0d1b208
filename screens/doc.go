// Package screens contains overlay flows rendered on top of tabs.
//
// Allowed here:
// - screen implementations that satisfy core.Screen (command palette, route prompt)
// - overlay-specific presentation and interaction wiring
//
// Not allowed here:
// - app-wide routing tables and key registry ownership
// - backend calls
package screens
