package menu

// ResolvePosition computes the screen position for a menu from ranked
// candidate sources. It is total: when every input is absent or invalid it
// falls back to the origin.
//
// Candidates are evaluated strictly in order and evaluation stops at the
// first valid result, so lower-ranked producers (and their layout queries)
// are never touched once a higher-ranked one succeeds:
//
//  1. a selection canvas point offset by the anchor's bounding-box origin,
//  2. the triggering event's first coordinate pair,
//  3. the anchor's bounding-box top-left alone,
//  4. the static origin {0, 0}.
func ResolvePosition(canvasPoints []Point, event *InputEvent, anchor Anchor) Point {
	producers := []func() (Point, bool){
		func() (Point, bool) { return canvasCandidate(canvasPoints, anchor) },
		func() (Point, bool) { return eventCandidate(event) },
		func() (Point, bool) { return anchorCandidate(anchor) },
		func() (Point, bool) { return Point{}, true },
	}

	for _, produce := range producers {
		if p, ok := produce(); ok && p.Valid() {
			return p
		}
	}
	return Point{}
}

// canvasCandidate returns the first canvas point, in input order, for which
// both the raw point and the anchor origin are independently valid, offset
// by that origin.
func canvasCandidate(points []Point, anchor Anchor) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	origin := anchorOrigin(anchor)
	for _, p := range points {
		if p.Valid() && origin.Valid() {
			return p.Add(origin), true
		}
	}
	return Point{}, false
}

// eventCandidate returns the event's first reported coordinate pair.
func eventCandidate(event *InputEvent) (Point, bool) {
	return event.First()
}

// anchorCandidate returns the anchor's bounding-box top-left.
func anchorCandidate(anchor Anchor) (Point, bool) {
	if anchor == nil {
		return Point{}, false
	}
	origin := anchorOrigin(anchor)
	return origin, origin.Valid()
}

// anchorOrigin measures the anchor's bounding box and returns its top-left,
// or an invalid point when no anchor is present.
func anchorOrigin(anchor Anchor) Point {
	if anchor == nil {
		return invalidPoint()
	}
	b := anchor.Bounds()
	return Point{X: float64(b.X), Y: float64(b.Y)}
}
