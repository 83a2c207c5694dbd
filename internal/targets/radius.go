package targets

import "time"

// Radius grows linearly from 0 to maxRadius over the first half of the lifetime
// and shrinks back to 0 over the second half. The result is clamped to [0, maxRadius].
func Radius(age, lifetime time.Duration, maxRadius float64) float64 {
	if lifetime <= 0 || age <= 0 {
		return 0
	}
	progress := float64(age) / float64(lifetime)
	if progress > 1 {
		return 0
	}
	var scale float64
	if progress < 0.5 {
		scale = progress * 2
	} else {
		scale = 1 - (progress-0.5)*2
	}
	return maxRadius * scale
}

// MarkerAlpha fades a missed-click marker from 1 to 0 over MarkerLifetime.
func MarkerAlpha(age time.Duration) float64 {
	if age <= 0 {
		return 1
	}
	if age >= MarkerLifetime {
		return 0
	}
	return 1 - float64(age)/float64(MarkerLifetime)
}
