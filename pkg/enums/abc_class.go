package enums

// ABCClass is a single-axis Pareto tier.
type ABCClass string

const (
	ABCClassA ABCClass = "A"
	ABCClassB ABCClass = "B"
	ABCClassC ABCClass = "C"
)

// IsValid reports whether the value is one of the three tiers.
func (c ABCClass) IsValid() bool {
	switch c {
	case ABCClassA, ABCClassB, ABCClassC:
		return true
	}
	return false
}
