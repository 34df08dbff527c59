// Package surface defines the scrollable surface abstraction for scrollmux.
//
// A Surface is anything that can report a visible size, report and accept a
// scroll offset, and deliver scroll notifications. Two concrete variants are
// provided:
//
//   - Viewport: the global/default surface, backed by a Host that reports the
//     visible size (typically a terminal screen).
//   - Box: a bounded container with its own position, visible size, and
//     scroll offset.
//
// Every capability a consumer may need is part of the Surface interface, so
// variant selection happens once at configuration time rather than through
// runtime capability probing.
//
// The package also provides the process-wide ResizeNotifier. Resize is a
// host-level facility shared by all consumers, not a per-surface event.
package surface
