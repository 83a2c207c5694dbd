package targets

import "time"

type Target struct {
	X         float64
	Y         float64
	MaxRadius float64
	Born      time.Time
	Lifetime  time.Duration
	// Radius is the radius drawn by the last render pass. Hit-testing uses
	// it so a click matches what the player saw.
	Radius float64
}

// Marker is the fading dot left where a click hit nothing.
type Marker struct {
	X    float64
	Y    float64
	Born time.Time
}
