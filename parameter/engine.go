package parameter

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the sandbox frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputQueueSize buffers terminal events between the poll goroutine and the loop
	InputQueueSize = 100
)

// Sandbox View
const (
	// ViewFocalLength scales the perspective projection of the front view
	ViewFocalLength = 3.0

	// ViewCameraZ is the camera position on the track axis
	ViewCameraZ = -3.0

	// ViewHitPlaneZ is the track coordinate where the saber sweeps
	ViewHitPlaneZ = 0.0

	// ViewCellAspect compensates for terminal cells being twice as tall as wide
	ViewCellAspect = 2.0

	// FlashDuration keeps a failed swing marker on screen
	FlashDuration = 250 * time.Millisecond

	// HUDRows is the number of status lines at the top of the screen
	HUDRows = 2
)

// Feedback queue ring, power of two for masking
const (
	FeedbackQueueSize = 256
	FeedbackQueueMask = FeedbackQueueSize - 1
)
