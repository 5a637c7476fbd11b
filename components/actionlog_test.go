package components

import (
	"testing"

	"github.com/automoto/actionmap/input"
)

func names(events []ActionEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestActionLogRing(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		push     []string
		want     []string
	}{
		{"empty", 3, nil, []string{}},
		{"partial", 3, []string{"a", "b"}, []string{"b", "a"}},
		{"full", 3, []string{"a", "b", "c"}, []string{"c", "b", "a"}},
		{"wrapped", 3, []string{"a", "b", "c", "d", "e"}, []string{"e", "d", "c"}},
		{"capacity clamped", 0, []string{"a", "b"}, []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewActionLogData(tt.capacity)
			for _, n := range tt.push {
				l.Push(ActionEvent{Name: n})
			}
			if got := names(l.Recent()); !equal(got, tt.want) {
				t.Errorf("Recent = %v, want %v", got, tt.want)
			}
			if l.Len() != len(tt.want) {
				t.Errorf("Len = %d, want %d", l.Len(), len(tt.want))
			}
		})
	}
}

func TestActionLogCollapsesRepeats(t *testing.T) {
	l := NewActionLogData(4)
	l.Push(ActionEvent{Tick: 1, Name: "Move", Device: input.DeviceKeyboard, Value: "+1.00, +0.00"})
	l.Push(ActionEvent{Tick: 2, Name: "Move", Device: input.DeviceKeyboard, Value: "+1.00, +1.00"})
	// Same action from another device is a new entry
	l.Push(ActionEvent{Tick: 2, Name: "Move", Device: input.DeviceGamepad})
	l.Push(ActionEvent{Tick: 3, Name: "Move", Device: input.DeviceGamepad, DeviceIndex: 1})

	got := l.Recent()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3: %+v", len(got), got)
	}
	kb := got[2]
	if kb.Count != 2 || kb.Tick != 2 || kb.Value != "+1.00, +1.00" {
		t.Errorf("collapsed entry = %+v", kb)
	}
	if got[0].DeviceIndex != 1 || got[0].Count != 1 {
		t.Errorf("newest entry = %+v", got[0])
	}
}

func TestZeroValueActionLog(t *testing.T) {
	var l ActionLogData
	l.Push(ActionEvent{Name: "Jump"})
	if got := names(l.Recent()); !equal(got, []string{"Jump"}) {
		t.Errorf("Recent = %v", got)
	}
}
