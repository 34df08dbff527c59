package geometry

import "github.com/dshills/scrollmux/internal/surface"

// MeasureSurface returns the surface's visible size, substituting fallback
// when the surface is nil or not measurable yet. A missing surface is a
// valid, expected state (pre-attachment rendering), never an error.
func MeasureSurface(s surface.Surface, fallback surface.Size) surface.Size {
	if s == nil {
		return fallback
	}
	size, ok := s.Measure()
	if !ok {
		return fallback
	}
	return size
}

// MeasureOffset returns the structural offset of elem within s: the fixed
// distance from the element's top-left corner to the surface's scrolling
// origin. Elements report a view-relative position, so the surface's
// current scroll offset is added back to make the result stable across
// scrolling. A nil or detached element measures as zero.
func MeasureOffset(elem surface.Element, s surface.Surface) surface.Offset {
	if elem == nil {
		return surface.Offset{}
	}
	pos, ok := elem.ViewPosition()
	if !ok {
		return surface.Offset{}
	}
	if s == nil {
		return pos
	}
	sc := s.ReadScroll()
	return surface.Offset{Left: pos.Left + sc.Left, Top: pos.Top + sc.Top}
}

// MeasureScrollOffset returns the surface's current raw scroll position.
// A nil surface measures as zero.
func MeasureScrollOffset(s surface.Surface) surface.Offset {
	if s == nil {
		return surface.Offset{}
	}
	return s.ReadScroll()
}
