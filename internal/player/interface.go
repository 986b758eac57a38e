package player

import "context"

// Interface is the playback transport driven by seek.
type Interface interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
}

// Verify Shell implements Interface at compile time.
var _ Interface = (*Shell)(nil)
