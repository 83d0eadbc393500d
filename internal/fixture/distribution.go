package fixture

import "fmt"

// Distribution selects how record keys are assigned during generation.
// It is a closed enumeration; parse user input once at the CLI boundary
// with ParseDistribution rather than comparing strings downstream.
type Distribution int

const (
	// Random draws each key independently and uniformly from the full
	// uint32 range. No ordering guarantee.
	Random Distribution = iota

	// Ascending assigns key i to the i-th record, producing an already
	// sorted file.
	Ascending

	// Descending assigns key N-1-i to the i-th record, producing a
	// reverse-sorted file.
	Descending
)

// ValidModes lists the accepted --mode values in CLI order.
var ValidModes = []string{"random", "ascending", "descending"}

// ParseDistribution maps a mode string to its Distribution.
func ParseDistribution(s string) (Distribution, error) {
	switch s {
	case "random":
		return Random, nil
	case "ascending":
		return Ascending, nil
	case "descending":
		return Descending, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be one of %v", s, ValidModes)
	}
}

// String returns the CLI name of the distribution.
func (d Distribution) String() string {
	switch d {
	case Random:
		return "random"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}
