// Package life provides the core primitives for the particle-life model.
//
// The package defines the shared types consumed by the simulation engine
// and its collaborators:
//
//   - [Spec]: configuration bundle for a simulation instance
//   - [Snapshot]: read-only copy of particle state for renderers
//   - [Diagnostics]: per-frame observability values
//
// The world is a fixed square domain with coordinates in [-1,1] on each
// axis. With Wrap enabled the domain is a torus, otherwise a reflecting
// box.
//
// # Error Philosophy
//
// Nothing in the hot loop returns an error. Malformed configuration is
// repaired by [Spec.Normalize] (clamp to the nearest valid bound, or fall
// back to a generated matrix) so a live-edited simulation degrades
// gracefully instead of halting.
package life
