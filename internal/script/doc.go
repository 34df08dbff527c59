// Package script provides optional Lua hooks for scroll state changes.
//
// A user script may define two global functions:
//
//	function on_scroll(frame)  -- frame: width, height, scroll_left,
//	                           --        scroll_top, is_scrolling
//	function on_resize(size)   -- size: width, height
//
// Either hook may be omitted. Script errors are returned to the caller
// for reporting but are never fatal to the tracking subsystem.
package script
