package player

import (
	"context"
)

// Player is the playback engine a view reads the position from and sends
// seek requests to. Times are in seconds.
type Player interface {
	CurrentTime(ctx context.Context) float64
	Seek(ctx context.Context, time float64) error
}

/* for easier copy&paste:

func () CurrentTime(ctx context.Context) float64 {
}

func () Seek(ctx context.Context, time float64) error {
}

*/
