package domain

// SegmentKind distinguishes roulette outcomes
type SegmentKind int

const (
	SegmentPoints SegmentKind = iota
	SegmentMiss
	SegmentRetry
)

// RouletteSegment is one slice of the wheel
type RouletteSegment struct {
	Label  string
	Kind   SegmentKind
	Points int
}

// RouletteSegments is the fixed outcome table shared with the authority.
// The authority returns an index into this table; order must match the server.
var RouletteSegments = [RouletteSegmentCount]RouletteSegment{
	{Label: "1000 P", Kind: SegmentPoints, Points: 1000},
	{Label: "MISS", Kind: SegmentMiss},
	{Label: "500 P", Kind: SegmentPoints, Points: 500},
	{Label: "RETRY", Kind: SegmentRetry},
	{Label: "2000 P", Kind: SegmentPoints, Points: 2000},
	{Label: "MISS", Kind: SegmentMiss},
}

// SegmentAt returns the segment for an authoritative result index
func SegmentAt(index int) (RouletteSegment, bool) {
	if index < 0 || index >= RouletteSegmentCount {
		return RouletteSegment{}, false
	}
	return RouletteSegments[index], true
}
