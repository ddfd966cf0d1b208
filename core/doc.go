// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - model routing, path routes, message contracts, command and key registries
// - the screen stack and tab switching
// - header, status bar and footer chrome
//
// Not allowed here:
// - concrete tab or overlay implementations (tabs, screens)
// - backend calls or request state (internal/api, internal/request)
// - low-level widget rendering primitives
package core
