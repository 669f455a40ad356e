package system

import (
	"github.com/milk9111/mercmech/common"
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	snapped      bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera transform toward its target mech, leading in the
// direction the mech faces.
func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.snapped = false
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		target, ok := findMechByName(w, cam.TargetName)
		if !ok {
			return
		}
		cs.targetEntity = target
		cs.snapped = false
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	goalX := target.X + float64(target.Facing)*cam.LookAhead
	goalY := target.Y
	if !cs.snapped || cam.Smoothness <= 0 {
		camTransform.X, camTransform.Y = goalX, goalY
		cs.snapped = true
		return
	}
	camTransform.X = common.Lerp(camTransform.X, goalX, cam.Smoothness)
	camTransform.Y = common.Lerp(camTransform.Y, goalY, cam.Smoothness)
}

// findMechByName falls back to the first mech when name is empty or unknown.
func findMechByName(w *ecs.World, name string) (ecs.Entity, bool) {
	var found, first ecs.Entity
	var haveFound, haveFirst bool
	ecs.ForEach(w, component.MechComponent.Kind(), func(e ecs.Entity, m *component.Mech) {
		if !haveFirst {
			first, haveFirst = e, true
		}
		if !haveFound && name != "" && m.Name == name {
			found, haveFound = e, true
		}
	})
	if haveFound {
		return found, true
	}
	return first, haveFirst
}
