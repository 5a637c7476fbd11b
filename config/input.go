package config

import (
	"fmt"
	"os"

	"github.com/automoto/actionmap/input"
	"gopkg.in/yaml.v3"
)

// Built-in action names
const (
	ActionJump  = "Jump"
	ActionFire  = "Fire"
	ActionMove  = "Move"
	ActionLook  = "Look"
	ActionZoom  = "Zoom"
	ActionPause = "Pause"
	ActionTap   = "Tap"
)

func keyPtr(k input.KeyCode) *input.KeyCode { return &k }

// DefaultActions returns the built-in action map. Every call returns a fresh
// copy that the caller may modify.
func DefaultActions() input.ActionSet {
	return input.ActionSet{Actions: []input.Action{
		{
			Name: ActionJump,
			Type: input.ActionPress,
			Devices: []input.Device{
				{Kind: input.DeviceKeyboard, Keys: &input.KeyBinding{FirstPositive: input.KeySpace}},
				// A / Cross button
				{Kind: input.DeviceGamepad, Gamepad: &input.GamepadBinding{Button: input.GamepadSouth}},
			},
		},
		{
			Name: ActionFire,
			Type: input.ActionContinousPress,
			Devices: []input.Device{
				{Kind: input.DeviceMouse, Mouse: &input.MouseBinding{Button: input.MouseLeft}},
				{Kind: input.DeviceGamepad, Gamepad: &input.GamepadBinding{Button: input.GamepadRightShoulder}},
			},
		},
		{
			Name: ActionMove,
			Type: input.ActionDualAxis,
			Devices: []input.Device{
				{Kind: input.DeviceKeyboard, Keys: &input.KeyBinding{
					FirstPositive:  input.KeyD,
					FirstNegative:  input.KeyA,
					SecondPositive: keyPtr(input.KeyW),
					SecondNegative: keyPtr(input.KeyS),
				}},
				{Kind: input.DeviceKeyboard, Keys: &input.KeyBinding{
					FirstPositive:  input.KeyRight,
					FirstNegative:  input.KeyLeft,
					SecondPositive: keyPtr(input.KeyUp),
					SecondNegative: keyPtr(input.KeyDown),
				}},
				{Kind: input.DeviceGamepad, Gamepad: &input.GamepadBinding{
					FirstAxis:  input.GamepadAxisLeftX,
					SecondAxis: input.GamepadAxisLeftY,
				}},
			},
		},
		{
			Name: ActionLook,
			Type: input.ActionDualAxis,
			Devices: []input.Device{
				{Kind: input.DeviceMouse, Mouse: &input.MouseBinding{Horizontal: true, Vertical: true}},
				{Kind: input.DeviceGamepad, Gamepad: &input.GamepadBinding{
					FirstAxis:  input.GamepadAxisRightX,
					SecondAxis: input.GamepadAxisRightY,
				}},
			},
		},
		{
			Name: ActionZoom,
			Type: input.ActionAxis,
			Devices: []input.Device{
				{Kind: input.DeviceMouse, Mouse: &input.MouseBinding{Scroll: true}},
				{Kind: input.DeviceKeyboard, Keys: &input.KeyBinding{
					FirstPositive: input.KeyEqual,
					FirstNegative: input.KeyMinus,
				}},
				{Kind: input.DeviceGamepad, Gamepad: &input.GamepadBinding{FirstAxis: input.GamepadAxisRightTrigger}},
			},
		},
		{
			Name: ActionPause,
			Type: input.ActionPress,
			Devices: []input.Device{
				{Kind: input.DeviceKeyboard, Keys: &input.KeyBinding{FirstPositive: input.KeyEscape}},
				// Start / Options button
				{Kind: input.DeviceGamepad, Gamepad: &input.GamepadBinding{Button: input.GamepadStart}},
			},
		},
		{
			Name: ActionTap,
			Type: input.ActionPress,
			Devices: []input.Device{
				{Kind: input.DeviceTouch, Touch: &input.TouchBinding{}},
			},
		},
	}}
}

// ParseActions decodes a YAML action map and validates it
func ParseActions(data []byte) (input.ActionSet, error) {
	var set input.ActionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return input.ActionSet{}, fmt.Errorf("parse action map: %w", err)
	}
	if err := set.Validate(); err != nil {
		return input.ActionSet{}, err
	}
	return set, nil
}

// LoadActions reads a YAML action map from disk
func LoadActions(path string) (input.ActionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return input.ActionSet{}, err
	}
	set, err := ParseActions(data)
	if err != nil {
		return input.ActionSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// MarshalActions encodes an action map as YAML
func MarshalActions(set input.ActionSet) ([]byte, error) {
	return yaml.Marshal(set)
}
