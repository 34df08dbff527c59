// Package mux provides the scroll event multiplexer.
//
// Many independent consumers may observe the same scrollable surface. The
// multiplexer keeps exactly one native subscription per distinct surface
// and fans each scroll notification out to every registered observer in
// registration order. The native subscription is attached when the first
// observer registers and detached when the last one unregisters.
//
// The multiplexer is an explicit service rather than ambient process
// state: tests and applications create their own isolated instance and
// inject it into consumers.
package mux
