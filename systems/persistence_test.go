package systems

import (
	"errors"
	"strings"
	"testing"

	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/input"
)

func TestEncodeDecodeBindings(t *testing.T) {
	set := cfg.DefaultActions()

	data, err := encodeBindings(set)
	if err != nil {
		t.Fatalf("encodeBindings: %v", err)
	}
	if !strings.Contains(string(data), `"type":"DualAxis"`) {
		t.Errorf("encoded bindings should use enum names: %s", data)
	}

	got, err := decodeBindings(data)
	if err != nil {
		t.Fatalf("decodeBindings: %v", err)
	}
	if len(got.Actions) != len(set.Actions) {
		t.Fatalf("decoded %d actions, want %d", len(got.Actions), len(set.Actions))
	}
	move, ok := got.Find(cfg.ActionMove)
	if !ok || move.Type != input.ActionDualAxis || len(move.Devices) != 3 {
		t.Errorf("Move decoded as %+v", move)
	}
}

func TestDecodeBindings(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantNil bool
		wantErr bool
	}{
		{name: "empty", data: "", wantNil: true},
		{name: "malformed", data: "{", wantErr: true},
		{name: "future version", data: `{"version":9,"actions":{"actions":[]}}`, wantErr: true},
		{name: "unknown key", data: `{"version":1,"actions":{"actions":[{"name":"X","type":"Press","devices":[{"device":"Keyboard","keys":{"firstPositive":"Hyper"}}]}]}}`, wantErr: true},
		{name: "no actions", data: `{"version":1,"actions":{"actions":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeBindings([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("got = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}

func TestEncodeBindingsRejectsInvalidSet(t *testing.T) {
	tests := []struct {
		name   string
		device input.Device
	}{
		{"missing keys block", input.Device{Kind: input.DeviceKeyboard}},
		// Would be written as "KeyCode(99)", which decoding rejects
		{"unnamed key", input.Device{Kind: input.DeviceKeyboard, Keys: &input.KeyBinding{FirstPositive: input.KeyCode(99)}}},
		{"unnamed mouse button", input.Device{Kind: input.DeviceMouse, Mouse: &input.MouseBinding{Button: input.MouseButton(-1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := input.ActionSet{Actions: []input.Action{
				{Name: "Jump", Type: input.ActionPress, Devices: []input.Device{tt.device}},
			}}
			if _, err := encodeBindings(set); !errors.Is(err, input.ErrInvalidBinding) {
				t.Errorf("err = %v, want ErrInvalidBinding", err)
			}
		})
	}
}

func TestPersistenceWithoutStoreIsNoop(t *testing.T) {
	gdataManager = nil
	if got, err := LoadBindings(); got != nil || err != nil {
		t.Errorf("LoadBindings = %v, %v", got, err)
	}
	if err := SaveBindings(cfg.DefaultActions()); err != nil {
		t.Errorf("SaveBindings: %v", err)
	}
	if err := ClearBindings(); err != nil {
		t.Errorf("ClearBindings: %v", err)
	}
}
