package types

// Distribution counts grades in the five dashboard ranges.
type Distribution struct {
	Below60  int
	From60   int
	From70   int
	From80   int
	From90Up int
}

// Labels names the ranges in display order.
var Labels = [5]string{"0-60", "60-70", "70-80", "80-90", "90-100"}

// NewDistribution buckets scores into the five ranges.
func NewDistribution(scores []int) Distribution {
	var d Distribution
	for _, s := range scores {
		switch {
		case s < 60:
			d.Below60++
		case s < 70:
			d.From60++
		case s < 80:
			d.From70++
		case s < 90:
			d.From80++
		default:
			d.From90Up++
		}
	}
	return d
}

// Counts returns the bucket counts in Labels order.
func (d Distribution) Counts() [5]int {
	return [5]int{d.Below60, d.From60, d.From70, d.From80, d.From90Up}
}
