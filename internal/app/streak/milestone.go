package streak

// Milestones are the fixed badge thresholds, ascending.
var Milestones = []int{5, 10, 30, 90}

// Detect returns every milestone ≤ streak that is not already earned,
// in ascending order. A streak that jumps past several thresholds in
// one update (a backfilled or corrected streak) awards them all at
// once.
func Detect(streak int, earned []int) []int {
	var crossed []int
	for _, m := range Milestones {
		if m > streak {
			break
		}
		if !containsInt(earned, m) {
			crossed = append(crossed, m)
		}
	}
	return crossed
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
