package core

import (
	"fmt"
	"strings"
)

// FailureReason explains a rejected swing
type FailureReason uint8

const (
	ReasonNone FailureReason = iota
	ReasonWrongColor
	ReasonTooSlow
	ReasonWrongDirection
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWrongColor:
		return "wrong_color"
	case ReasonTooSlow:
		return "too_slow"
	case ReasonWrongDirection:
		return "wrong_direction"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// SwingVerdict is the outcome of validating one contact attempt
type SwingVerdict struct {
	Passed bool
	Reason FailureReason
}

// Pass is the verdict for an accepted swing
func Pass() SwingVerdict {
	return SwingVerdict{Passed: true, Reason: ReasonNone}
}

// Fail is the verdict for a swing rejected for reason
func Fail(reason FailureReason) SwingVerdict {
	return SwingVerdict{Reason: reason}
}

// FailPolicy decides what a rejected swing does to the block
type FailPolicy uint8

const (
	// FailPolicyRetry leaves the block Active until it is cut or crosses the miss boundary
	FailPolicyRetry FailPolicy = iota
	// FailPolicyTerminal consumes the block on the first rejected swing
	FailPolicyTerminal
)

func (p FailPolicy) String() string {
	if p == FailPolicyTerminal {
		return "terminal"
	}
	return "retry"
}

// ParseFailPolicy accepts "retry" and "terminal", ignoring case and surrounding space
func ParseFailPolicy(s string) (FailPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "retry", "":
		return FailPolicyRetry, nil
	case "terminal":
		return FailPolicyTerminal, nil
	}
	return 0, fmt.Errorf("%w: unknown fail policy %q", ErrConfiguration, s)
}
