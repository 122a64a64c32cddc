package system

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/physics"
	"github.com/lixenwraith/vi-saber/slicer"
)

// DebrisID identifies a separated piece
type DebrisID uint64

// Debris is one piece left by a resolved swing, animated until cleanup
type Debris struct {
	ID    DebrisID
	Block core.BlockID
	Color core.Color
	Solid slicer.Solid // local frame of the source block
	Body  physics.Body
	Upper bool // on the positive side of the normal
	Cut   bool // false for a non-cut fallback separation
}

// separate spawns the two pieces with opposing impulses along normal
func (s *BlockSystem) separate(b *Block, upper, lower slicer.Solid, normal r3.Vec, cut bool, now time.Time) {
	upImpulse, downImpulse := physics.SeparationImpulses(normal, s.rules.SeparationForce, s.rules.LiftForce)
	s.spawnDebris(b, upper, upImpulse, true, cut, now)
	s.spawnDebris(b, lower, downImpulse, false, cut, now)
}

func (s *BlockSystem) spawnDebris(b *Block, solid slicer.Solid, impulse r3.Vec, upper, cut bool, now time.Time) {
	s.nextDebris++
	d := &Debris{
		ID:    s.nextDebris,
		Block: b.ID,
		Color: b.Color,
		Solid: solid,
		Body:  physics.Body{Position: r3.Add(b.Position, solid.Center())},
		Upper: upper,
		Cut:   cut,
	}
	physics.ApplyImpulse(&d.Body, impulse)

	s.debris[d.ID] = d
	s.debrisOrder = append(s.debrisOrder, d.ID)
	s.cleanupQueue.After(now.Add(s.rules.PiecesLifetime), d.ID, s.removeDebris)
}

func (s *BlockSystem) advanceDebris(sec float64) {
	g := physics.GravityAccel(s.rules.Gravity)
	for _, id := range s.debrisOrder {
		physics.Integrate(&s.debris[id].Body, g, sec)
	}
}

func (s *BlockSystem) debrisExists(id DebrisID) bool {
	_, ok := s.debris[id]
	return ok
}

func (s *BlockSystem) removeDebris(id DebrisID) {
	delete(s.debris, id)
	for i, oid := range s.debrisOrder {
		if oid == id {
			s.debrisOrder = append(s.debrisOrder[:i], s.debrisOrder[i+1:]...)
			break
		}
	}
}

// Debris returns copies of all live pieces in creation order
func (s *BlockSystem) Debris() []Debris {
	out := make([]Debris, 0, len(s.debrisOrder))
	for _, id := range s.debrisOrder {
		out = append(out, *s.debris[id])
	}
	return out
}
