package view

import "strconv"

// DefaultMinimizedSize is the size of a minimized view without an override.
const DefaultMinimizedSize = 2

// Amount is an optional size or weight.
type Amount struct {
	value float64
	set   bool
}

// Of returns a present Amount.
func Of(v float64) Amount {
	return Amount{value: v, set: true}
}

// Get returns the value and whether it is present.
func (a Amount) Get() (float64, bool) {
	return a.value, a.set
}

// Or returns the value or def when absent.
func (a Amount) Or(def float64) float64 {
	if a.set {
		return a.value
	}
	return def
}

func (a Amount) IsSet() bool {
	return a.set
}

func (a Amount) String() string {
	if !a.set {
		return "-"
	}
	return strconv.FormatFloat(a.value, 'g', -1, 64)
}

// Geometry holds the sizing hints of a view. Sizes of at most 1 are fractions
// of the space available to the view's sibling group. Fixed overrides Min and
// Max. Position is carried but not used for packing.
type Geometry struct {
	Min           Amount
	Max           Amount
	Fixed         Amount
	MinimizedSize Amount
	Weight        Amount
	Position      Amount
}
