package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/mech"
)

const (
	collisionTypeMech cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	DefaultGravity  = -9.81
	solidFriction   = 0.8
	landingNormalY  = 0.5
	minLandingSpeed = 1.0
)

// PhysicsSystem owns the Chipmunk space. Bodies are created on demand and
// stepped by the fixed clock.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	world     *ecs.World
	entities  map[ecs.Entity]*bodyInfo
	mechByCol map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	kind  bodyKind
}

type bodyKind uint8

const (
	bodyDynamic bodyKind = iota
	bodyStatic
	bodyKinematic
)

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:     space,
		entities:  make(map[ecs.Entity]*bodyInfo),
		mechByCol: make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// EnsureBody creates the Chipmunk body and shape for e from its PhysicsBody
// and Transform components. Calling it again returns the existing pair.
func (ps *PhysicsSystem) EnsureBody(w *ecs.World, e ecs.Entity) (*cp.Body, *cp.Shape, error) {
	if ps == nil || ps.space == nil || w == nil {
		return nil, nil, fmt.Errorf("physics: ensure body: no space")
	}
	if info, ok := ps.entities[e]; ok {
		return info.body, info.shape, nil
	}
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil, nil, fmt.Errorf("physics: entity %v has no physics body", e)
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, nil, fmt.Errorf("physics: entity %v has no transform", e)
	}
	if bodyComp.Width <= 0 || bodyComp.Height <= 0 {
		return nil, nil, fmt.Errorf("physics: entity %v has empty collider %vx%v", e, bodyComp.Width, bodyComp.Height)
	}

	ps.ensureHandlers()
	isMech := ecs.Has(w, e, component.MechComponent.Kind())
	info := ps.createBodyInfo(transform, bodyComp, isMech)
	ps.entities[e] = info
	if isMech {
		ps.mechByCol[info.shape] = e
	}

	bodyComp.Body = info.body
	bodyComp.Shape = info.shape
	return info.body, info.shape, nil
}

func (ps *PhysicsSystem) createBodyInfo(t *component.Transform, c *component.PhysicsBody, isMech bool) *bodyInfo {
	halfW, halfH := c.Width/2, c.Height/2

	if c.Static {
		bb := cp.BB{L: t.X - halfW, B: t.Y - halfH, R: t.X + halfW, T: t.Y + halfH}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(frictionOr(c.Friction, solidFriction))
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, mech.CategoryGround, cp.ALL_CATEGORIES))
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, kind: bodyStatic}
	}

	var body *cp.Body
	kind := bodyDynamic
	if c.Kinematic {
		body = cp.NewKinematicBody()
		kind = bodyKinematic
	} else {
		mass := c.Mass
		if mass <= 0 {
			mass = 1
		}
		// Mechs never rotate.
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	ps.space.AddBody(body)

	shape := cp.NewBox(body, c.Width, c.Height, 0)
	if isMech {
		shape.SetFriction(c.Friction)
		shape.SetCollisionType(collisionTypeMech)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, mech.CategoryMech, mech.CategoryGround))
	} else {
		shape.SetFriction(frictionOr(c.Friction, solidFriction))
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, mech.CategoryGround, cp.ALL_CATEGORIES))
	}
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape, kind: kind}
}

func frictionOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// ensureHandlers reports hard landings as events.
func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeMech, collisionTypeSolid)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		mechEntity, mechIsA := sys.mechByCol[shapeA]
		mechShape := shapeA
		if !mechIsA {
			var okB bool
			mechEntity, okB = sys.mechByCol[shapeB]
			if !okB {
				return true
			}
			mechShape = shapeB
		}

		// Normal points from A to B; flip it so it points from the mech into the solid.
		n := arb.Normal()
		if !mechIsA {
			n = n.Neg()
		}
		if n.Y > -landingNormalY {
			return true
		}
		speed := -mechShape.Body().Velocity().Y
		if speed < minLandingSpeed {
			return true
		}
		sys.world.Events().Push(ecs.Event{Type: EventMechLanded, Data: MechEvent{Entity: mechEntity, Value: speed}})
		return true
	}

	ps.handlersReady = true
}

// Update drops bodies whose entities are gone.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
}

func (ps *PhysicsSystem) FixedUpdate(w *ecs.World, dt float64) {
	if ps == nil || ps.space == nil || w == nil || dt <= 0 {
		return
	}
	ps.world = w
	ps.space.Step(dt)
	ps.world = nil
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind == bodyStatic {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = info.body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) {
			continue
		}
		ps.removeInfo(info)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) removeInfo(info *bodyInfo) {
	if info == nil {
		return
	}
	if info.shape != nil && ps.space.ContainsShape(info.shape) {
		ps.space.RemoveShape(info.shape)
	}
	delete(ps.mechByCol, info.shape)
	if info.kind != bodyStatic && info.body != nil && ps.space.ContainsBody(info.body) {
		ps.space.RemoveBody(info.body)
	}
}

// Teleport moves a body and clears its velocity.
func (ps *PhysicsSystem) Teleport(w *ecs.World, e ecs.Entity, x, y float64) {
	info, ok := ps.entities[e]
	if !ok || info.kind == bodyStatic {
		return
	}
	info.body.SetPosition(cp.Vector{X: x, Y: y})
	info.body.SetVelocity(0, 0)
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
}

// Clear removes every body and shape so a level can be rebuilt.
func (ps *PhysicsSystem) Clear() {
	if ps == nil {
		return
	}
	for e, info := range ps.entities {
		ps.removeInfo(info)
		delete(ps.entities, e)
	}
}
