package challenge

import "image/color"

// Surface is the 2D drawing area a session renders into. Size may change
// between frames.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	// Present marks the end of a frame.
	Present()
}

// Display receives the presentation values a session produces.
type Display interface {
	ShowGame()
	ShowScore(score int)
	ShowTime(seconds int)
	ShowAccuracy(percent float64)
	ShowSpawnRate(perSecond float64)
	ShowSummary(s Summary)
	ShowHome()
}

// Recorder observes session activity. A nil Recorder in Options is replaced
// by one that does nothing.
type Recorder interface {
	SessionStarted()
	SessionEnded(reason EndReason)
	Shot(hit bool)
	Spawned()
	SpawnSkipped()
	Expired(n int)
}

type nopRecorder struct{}

func (nopRecorder) SessionStarted() {}
func (nopRecorder) SessionEnded(EndReason) {}
func (nopRecorder) Shot(bool) {}
func (nopRecorder) Spawned() {}
func (nopRecorder) SpawnSkipped() {}
func (nopRecorder) Expired(int) {}
