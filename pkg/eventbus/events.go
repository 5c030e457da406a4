package eventbus

// PlayerPlay is emitted when playback starts at Time (seconds).
type PlayerPlay struct {
	Time float64
}

// PlayerPause is emitted when playback is paused at Time (seconds).
type PlayerPause struct {
	Time float64
}

// PlayerTimeUpdate is emitted periodically during playback and after
// seeking.
type PlayerTimeUpdate struct {
	Time float64
}

// ZoomviewDisplaying is emitted by a zoomed view whenever the time range
// it displays changes.
type ZoomviewDisplaying struct {
	StartTime float64
	EndTime   float64
}

// WindowResize is emitted when the host window (and so possibly the view
// containers) changed its size. Receivers query their containers.
type WindowResize struct{}
