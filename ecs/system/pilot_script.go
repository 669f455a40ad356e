package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/mercmech/common"
	"github.com/milk9111/mercmech/mech"
)

var ErrPilotNoEntry = errors.New("pilot: script does not define pilot(tick, status, memory)")

type pilotRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	memory     *tengo.Map
}

const pilotDispatchScript = `
__out := undefined
__has_pilot := is_callable(pilot)
if __has_pilot {
	__out = pilot(__tick, __status, __memory)
}
`

func compilePilot(path string, src []byte) (*pilotRuntime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + pilotDispatchScript))
	_ = script.Add("__tick", 0)
	_ = script.Add("__status", map[string]interface{}{})
	_ = script.Add("__memory", map[string]interface{}{})
	script.SetImports(stdlib.GetModuleMap("math", "rand", "text", "times"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &pilotRuntime{
		scriptPath: path,
		compiled:   compiled,
		memory:     &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *pilotRuntime) call(tick int, status mech.Status, budget time.Duration) (mech.Input, error) {
	if rt == nil || rt.compiled == nil {
		return mech.Input{}, fmt.Errorf("nil pilot runtime")
	}
	if err := rt.compiled.Set("__tick", tick); err != nil {
		return mech.Input{}, err
	}
	if err := rt.compiled.Set("__status", statusMap(status)); err != nil {
		return mech.Input{}, err
	}
	if err := rt.compiled.Set("__memory", rt.memory); err != nil {
		return mech.Input{}, err
	}

	ctx := context.Background()
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	if err := rt.compiled.RunContext(ctx); err != nil {
		return mech.Input{}, fmt.Errorf("run %s: %w", rt.scriptPath, err)
	}
	if !rt.compiled.Get("__has_pilot").Bool() {
		return mech.Input{}, fmt.Errorf("%s: %w", rt.scriptPath, ErrPilotNoEntry)
	}
	return inputFromObject(rt.compiled.Get("__out").Object())
}

func statusMap(st mech.Status) map[string]interface{} {
	return map[string]interface{}{
		"x":              st.Position.X,
		"y":              st.Position.Y,
		"vx":             st.Velocity.X,
		"vy":             st.Velocity.Y,
		"grounded":       st.Grounded,
		"flying":         st.Flying,
		"boosting":       st.Boosting,
		"quick_boosting": st.QuickBoosting,
		"dash_progress":  st.QuickBoostProgress,
		"fly_throttle":   st.FlyThrottle,
		"energy":         st.Energy,
		"energy_max":     st.EnergyMax,
		"facing":         st.Facing,
		"jump_phase":     st.Jump.String(),
	}
}

// inputFromObject reads the map a pilot returns. Missing keys are false or
// zero; anything other than a map is an error.
func inputFromObject(obj tengo.Object) (mech.Input, error) {
	var values map[string]tengo.Object
	switch v := obj.(type) {
	case *tengo.Map:
		values = v.Value
	case *tengo.ImmutableMap:
		values = v.Value
	case *tengo.Undefined, nil:
		return mech.Input{}, nil
	default:
		return mech.Input{}, fmt.Errorf("pilot returned %s, want a map", obj.TypeName())
	}

	return mech.Input{
		MoveAxis:   common.Clamp(objectAsFloat(values["move"]), -1, 1),
		Jump:       objectAsBool(values["jump"]),
		Fly:        objectAsBool(values["fly"]),
		Boost:      objectAsBool(values["boost"]),
		QuickBoost: objectAsBool(values["quick_boost"]),
	}, nil
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	case *tengo.Bool:
		if !v.IsFalsy() {
			return 1
		}
	}
	return 0
}

func objectAsBool(obj tengo.Object) bool {
	if obj == nil {
		return false
	}
	if _, ok := obj.(*tengo.Undefined); ok {
		return false
	}
	return !obj.IsFalsy()
}
