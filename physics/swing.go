package physics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/parameter"
	"github.com/lixenwraith/vi-saber/vmath"
)

// Target is the part of a block the validator reads
type Target interface {
	RequiredColor() core.Color
	RequiredDirection() core.Direction
}

// SwingRules holds the validator thresholds
type SwingRules struct {
	MinSpeed           float64
	DirectionTolerance float64
}

// DefaultSwingRules returns the stock thresholds
func DefaultSwingRules() SwingRules {
	return SwingRules{
		MinSpeed:           parameter.MinSwingSpeed,
		DirectionTolerance: parameter.DirectionTolerance,
	}
}

// Validator adjudicates contact attempts; stateless and safe to share
type Validator struct {
	rules SwingRules
}

// NewValidator creates a validator with rules
func NewValidator(rules SwingRules) *Validator {
	return &Validator{rules: rules}
}

// Rules returns the active thresholds
func (v *Validator) Rules() SwingRules {
	return v.rules
}

// Validate checks color, then speed, then direction; the first failure wins
func (v *Validator) Validate(saberColor core.Color, target Target, velocity r3.Vec) core.SwingVerdict {
	if saberColor != target.RequiredColor() {
		return core.Fail(core.ReasonWrongColor)
	}

	if r3.Norm(velocity) < v.rules.MinSpeed {
		return core.Fail(core.ReasonTooSlow)
	}

	required, ok := target.RequiredDirection().Vector()
	if !ok {
		// Any
		return core.Pass()
	}

	swing := vmath.Normalize(velocity)
	if r3.Dot(swing, required) > v.rules.DirectionTolerance {
		return core.Pass()
	}
	return core.Fail(core.ReasonWrongDirection)
}
