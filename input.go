package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/mercmech/common"
	"github.com/milk9111/mercmech/mech"
)

// readDevice samples keyboard and the first standard gamepad. Jump, Fly and
// Boost are levels; QuickBoost fires only on the press frame.
func readDevice() mech.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	in := mech.Input{
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace),
		Fly:   ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Boost: ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		QuickBoost: inpututil.IsKeyJustPressed(ebiten.KeyJ) ||
			inpututil.IsKeyJustPressed(ebiten.KeyK),
	}
	if left {
		in.MoveAxis -= 1
	}
	if right {
		in.MoveAxis += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > common.AxisDeadzone {
			in.MoveAxis = leftX
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Fly = in.Fly || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		in.Boost = in.Boost || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.QuickBoost = in.QuickBoost ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}
	return in
}

func pausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		return true
	}
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		return inpututil.IsStandardGamepadButtonJustPressed(gamepads[0], ebiten.StandardGamepadButtonCenterRight)
	}
	return false
}
