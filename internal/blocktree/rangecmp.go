package blocktree

// Range is an inclusive line interval, the key type spec.md §3/§4.3
// calls RangeCmp/RangeCmpRev order over.
type Range struct {
	Start uint32
	End   uint32
}

// Contains reports whether r wholly contains other: r.Start <= other.Start
// and other.End <= r.End (spec.md §4.3 search_contains_key definition).
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// CompareRange is the RangeCmp total order (spec.md §3): compare by
// Start ascending, break ties on End ascending.
func CompareRange(a, b Range) int {
	if a.Start != b.Start {
		return cmpUint32(a.Start, b.Start)
	}
	return cmpUint32(a.End, b.End)
}

// CompareRangeRev is the RangeCmpRev variant (spec.md §9 Open Question,
// DESIGN.md decision: implemented as the structural mirror of
// CompareRange — descending End, ties broken by descending Start).
// Advisory: no other package calls it; the interval tree, frontier and
// indent-tree paths order keys by CompareRange only.
func CompareRangeRev(a, b Range) int {
	if a.End != b.End {
		return cmpUint32(b.End, a.End)
	}
	return cmpUint32(b.Start, a.Start)
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
