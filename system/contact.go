package system

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/vmath"
)

// ColliderID is an engine-side collider handle
type ColliderID uint64

// ContactHandler receives "saber touched block"
type ContactHandler interface {
	HandleContact(saber core.SaberID, block core.BlockID, now time.Time) (core.SwingVerdict, error)
}

type contactPair struct {
	saber core.SaberID
	block core.BlockID
}

// ContactAdapter turns engine collision callbacks into contact attempts
// Only the enter edge of an overlap produces a contact; callbacks are handled
// synchronously in arrival order
type ContactAdapter struct {
	handler ContactHandler
	logger  zerolog.Logger

	sabers   map[ColliderID]core.SaberID
	blocks   map[ColliderID]core.BlockID
	touching map[contactPair]struct{}

	now       time.Time
	delivered int
}

// NewContactAdapter creates an adapter forwarding to handler
func NewContactAdapter(handler ContactHandler, logger zerolog.Logger) *ContactAdapter {
	return &ContactAdapter{
		handler:  handler,
		logger:   logger.With().Str("system", "contact").Logger(),
		sabers:   make(map[ColliderID]core.SaberID),
		blocks:   make(map[ColliderID]core.BlockID),
		touching: make(map[contactPair]struct{}),
	}
}

// BeginPhase stamps the time used for contacts in this collision phase
func (a *ContactAdapter) BeginPhase(now time.Time) {
	a.now = now
}

// BindSaber maps an engine collider to a saber
func (a *ContactAdapter) BindSaber(c ColliderID, id core.SaberID) {
	a.sabers[c] = id
}

// BindBlock maps an engine collider to a block
func (a *ContactAdapter) BindBlock(c ColliderID, id core.BlockID) {
	a.blocks[c] = id
}

// Unbind forgets a collider and any overlap it takes part in
func (a *ContactAdapter) Unbind(c ColliderID) {
	if id, ok := a.blocks[c]; ok {
		for p := range a.touching {
			if p.block == id {
				delete(a.touching, p)
			}
		}
		delete(a.blocks, c)
	}
	delete(a.sabers, c)
}

func (a *ContactAdapter) pair(x, y ColliderID) (contactPair, bool) {
	if sid, ok := a.sabers[x]; ok {
		if bid, ok := a.blocks[y]; ok {
			return contactPair{sid, bid}, true
		}
	}
	if sid, ok := a.sabers[y]; ok {
		if bid, ok := a.blocks[x]; ok {
			return contactPair{sid, bid}, true
		}
	}
	return contactPair{}, false
}

// OnCollisionEnter handles an engine enter callback, colliders in either order
// Pairs that are not saber and block are ignored
func (a *ContactAdapter) OnCollisionEnter(x, y ColliderID) {
	if p, ok := a.pair(x, y); ok {
		a.enter(p)
	}
}

// OnCollisionExit handles an engine exit callback
func (a *ContactAdapter) OnCollisionExit(x, y ColliderID) {
	if p, ok := a.pair(x, y); ok {
		delete(a.touching, p)
	}
}

// Contact delivers a contact directly, bypassing collider binding
func (a *ContactAdapter) Contact(saber core.SaberID, block core.BlockID) {
	a.enter(contactPair{saber, block})
}

func (a *ContactAdapter) enter(p contactPair) {
	if _, ok := a.touching[p]; ok {
		return
	}
	a.touching[p] = struct{}{}

	_, err := a.handler.HandleContact(p.saber, p.block, a.now)
	switch {
	case err == nil:
		a.delivered++
	case errors.Is(err, core.ErrUnknownBlock), errors.Is(err, core.ErrBlockInactive):
		// stale contact on a resolved or destroyed block
	default:
		a.logger.Warn().Err(err).
			Str("saber", p.saber.String()).
			Uint64("block", uint64(p.block)).
			Msg("contact rejected")
	}
}

// DetectOverlaps is the reference collision phase: sphere saber tips against
// collidable block boxes, sabers in hand order and blocks in spawn order
// Only sabers that have been sampled take part. It owns the overlap set, so it
// replaces engine callbacks rather than mixing with them
func (a *ContactAdapter) DetectOverlaps(sabers *SaberSystem, blocks *BlockSystem, radius float64) {
	current := make(map[contactPair]struct{})
	for sid := core.SaberID(0); sid < core.SaberCount; sid++ {
		if !sabers.Sampled(sid) {
			continue
		}
		snap, err := sabers.Snapshot(sid)
		if err != nil {
			continue
		}
		for _, id := range blocks.order {
			b := blocks.blocks[id]
			if !b.Collidable {
				continue
			}
			lo, hi := b.Bounds()
			if !vmath.SphereIntersectsBox(snap.Position, radius, lo, hi) {
				continue
			}
			p := contactPair{sid, id}
			current[p] = struct{}{}
			a.enter(p)
		}
	}

	// overlaps that ended are exits
	for p := range a.touching {
		if _, ok := current[p]; !ok {
			delete(a.touching, p)
		}
	}
}

// Delivered returns how many contacts reached the handler without error
func (a *ContactAdapter) Delivered() int {
	return a.delivered
}

// Reset forgets all overlaps and bindings
func (a *ContactAdapter) Reset() {
	clear(a.sabers)
	clear(a.blocks)
	clear(a.touching)
}
