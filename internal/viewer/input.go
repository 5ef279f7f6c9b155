package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type action int

const (
	actNone action = iota
	actTogglePause
	actStepForward
	actStepBack
	actFaster
	actSlower
	actFirst
	actLast
	actResetRate
	actToggleHUD
	actCopyReport
	actQuit
)

// keyBindings maps keys to viewer actions. Every binding is edge-triggered.
var keyBindings = []struct {
	key ebiten.Key
	act action
}{
	{ebiten.KeySpace, actTogglePause},
	{ebiten.KeyP, actTogglePause},
	{ebiten.KeyArrowRight, actStepForward},
	{ebiten.KeyArrowLeft, actStepBack},
	{ebiten.KeyArrowUp, actFaster},
	{ebiten.KeyArrowDown, actSlower},
	{ebiten.KeyHome, actFirst},
	{ebiten.KeyEnd, actLast},
	{ebiten.KeyR, actResetRate},
	{ebiten.KeyH, actToggleHUD},
	{ebiten.KeyC, actCopyReport},
	{ebiten.KeyEscape, actQuit},
	{ebiten.KeyQ, actQuit},
}

// handleInput processes keypresses (edge-triggered) and mouse selection.
func (v *Viewer) handleInput() error {
	currentKeys := map[ebiten.Key]bool{}
	for _, b := range keyBindings {
		currentKeys[b.key] = ebiten.IsKeyPressed(b.key)
		if currentKeys[b.key] && !v.prevKeys[b.key] {
			if err := v.apply(b.act); err != nil {
				return err
			}
		}
	}
	v.prevKeys = currentKeys

	// Left mouse click: select the NPC under the cursor.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !v.prevMouseLeft {
			mx, my := ebiten.CursorPosition()
			v.handleInspectorClick(mx, my)
		}
	}
	v.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return nil
}

// apply performs one action. Quitting returns ebiten.Termination.
func (v *Viewer) apply(a action) error {
	switch a {
	case actTogglePause:
		v.ctrl.TogglePause()
	case actStepForward:
		v.ctrl.StepForward()
	case actStepBack:
		v.ctrl.StepBack()
	case actFaster:
		v.ctrl.IncreaseRate()
	case actSlower:
		v.ctrl.DecreaseRate()
	case actFirst:
		v.ctrl.First()
	case actLast:
		v.ctrl.Last()
	case actResetRate:
		v.ctrl.ResetRate()
	case actToggleHUD:
		v.showHUD = !v.showHUD
	case actCopyReport:
		v.copyReport()
	case actQuit:
		return ebiten.Termination
	}
	v.events.Sync(v.rep.Events, v.ctrl.Index())
	return nil
}
