package combat

import "strconv"

func itoa(v int) string { return strconv.Itoa(v) }

func clampHP(hp, max int) int {
	if hp < 0 {
		return 0
	}
	if hp > max {
		return max
	}
	return hp
}
