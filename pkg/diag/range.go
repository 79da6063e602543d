package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range of characters [From, To] on a single line of
// source. Line, From and To are all 0-based, and To is inclusive, matching
// how tokens record their positions. Structs can embed Ranging to satisfy the
// [Ranger] interface.
type Ranging struct {
	Line int
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns a one-character Ranging at the given point.
func PointRanging(line, col int) Ranging {
	return Ranging{line, col, col}
}

// UnknownRanging is used when no position is available.
var UnknownRanging = Ranging{-1, -1, -1}

// MixedRanging returns a Ranging from the start position of a to the end
// position of b. If the two are on different lines, the result covers only
// a's line up to its end.
func MixedRanging(a, b Ranger) Ranging {
	ra, rb := a.Range(), b.Range()
	if ra.Line != rb.Line {
		return ra
	}
	return Ranging{ra.Line, ra.From, rb.To}
}
