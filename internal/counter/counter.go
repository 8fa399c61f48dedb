// Package counter implements the per-session violation counter arithmetic.
// All operations are pure and total: missing or negative inputs are treated
// as zero, growth is unbounded, and nothing here errors or panics.
package counter

// DefaultSevereWeight is how much a severe-path violation adds to the count.
const DefaultSevereWeight = 2

// RecordStandard returns the count after a standard-path violation.
// Used for all violations routed through graduated handling, regardless
// of tier.
func RecordStandard(current int) int {
	return clamp(current) + 1
}

// RecordSevere returns the count after an escalation-path violation.
// Non-positive weights fall back to DefaultSevereWeight.
func RecordSevere(current, weight int) int {
	if weight <= 0 {
		weight = DefaultSevereWeight
	}
	return clamp(current) + weight
}

// Reset returns the count after a reset: always zero.
func Reset(int) int {
	return 0
}

// clamp treats missing or corrupt (negative) counter values as zero.
func clamp(c int) int {
	if c < 0 {
		return 0
	}
	return c
}
