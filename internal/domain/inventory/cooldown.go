package inventory

import "time"

// DefaultCooldownMinutes is the minimum whole minutes that must elapse
// between two accepted scans of the same drum.
const DefaultCooldownMinutes = 60

// ElapsedWholeMinutes returns the number of complete minutes between the
// previous scan and now. Sub-minute remainders are discarded.
func ElapsedWholeMinutes(lastScan, now time.Time) int {
	return int(now.Sub(lastScan).Minutes())
}

// IsWithinCooldown reports whether a scan at now falls inside the
// cooldown window of a previous scan. The boundary is exclusive: a scan
// exactly cooldownMinutes after the previous one is NOT a duplicate.
func IsWithinCooldown(lastScan, now time.Time, cooldownMinutes int) bool {
	return ElapsedWholeMinutes(lastScan, now) < cooldownMinutes
}
