package event

import "fmt"

// Kind is the type of a feedback event
type Kind uint8

const (
	// KindSliceSuccess reports a validated and resolved cut
	// Trigger: BlockSystem contact pass | Consumer: audio, HUD, metrics
	KindSliceSuccess Kind = iota

	// KindSliceFail reports a rejected swing; Reason is set
	// Trigger: BlockSystem contact fail | Consumer: audio, HUD, metrics
	KindSliceFail

	// KindMiss reports a block crossing the miss boundary, or consumed by a terminal failure
	// Trigger: BlockSystem boundary check, terminal policy | Consumer: audio, HUD, metrics
	KindMiss

	// KindGeometryFallback reports a validated swing that no plane could cut
	// Trigger: BlockSystem resolve | Consumer: logging, metrics
	KindGeometryFallback

	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindSliceSuccess:
		return "slice_success"
	case KindSliceFail:
		return "slice_fail"
	case KindMiss:
		return "miss"
	case KindGeometryFallback:
		return "geometry_fallback"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
