package schedule

import "github.com/jdziat/cloud-schedule/pkg/core"

// InWindow reports whether now lies in [From, To), or [From, ∞) when To is 0.
func InWindow(d core.Descriptor, now uint32) bool {
	return now >= d.From && (now < d.To || d.To == 0)
}

// Delta returns the cycle length encoded in mask.
func Delta(mask uint32) uint32 {
	return Decode(mask).Delta()
}

// IsActive reports whether d is active at now (epoch seconds).
//
// The instant must fall inside the window and be selected by the recurrence;
// it is then active when its offset from From, taken modulo the cycle length,
// is at most Length. A zero cycle length never matches.
func IsActive(d core.Descriptor, now uint32) bool {
	if !InWindow(d, now) {
		return false
	}

	r := Decode(d.Mask)
	if !r.Matches(now) {
		return false
	}

	delta := r.Delta()
	if delta == 0 {
		return false
	}
	return elapsed(now, d.From)%delta <= d.Length
}

// elapsed is the absolute distance between now and from.
func elapsed(now, from uint32) uint32 {
	if now >= from {
		return now - from
	}
	return from - now
}
