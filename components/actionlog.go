package components

import (
	"github.com/automoto/actionmap/input"
	"github.com/yohamta/donburi"
)

// ActionEvent is one resolved action invocation shown by the viewer
type ActionEvent struct {
	Tick        int
	Name        string
	Device      input.DeviceKind
	DeviceIndex int
	Value       string // formatted axis value, empty for presses
	Count       int    // consecutive identical events collapsed into this one
}

// ActionLogData is a fixed-size ring of recent action events.
type ActionLogData struct {
	entries []ActionEvent
	next    int
	size    int
}

var ActionLog = donburi.NewComponentType[ActionLogData]()

// NewActionLogData returns a log holding at most capacity events.
func NewActionLogData(capacity int) ActionLogData {
	if capacity < 1 {
		capacity = 1
	}
	return ActionLogData{entries: make([]ActionEvent, capacity)}
}

// Push appends e, overwriting the oldest entry when full. An event matching
// the newest entry's action and device bumps its count instead, so held
// inputs don't flood the log.
func (l *ActionLogData) Push(e ActionEvent) {
	if len(l.entries) == 0 {
		*l = NewActionLogData(1)
	}
	if e.Count == 0 {
		e.Count = 1
	}
	if l.size > 0 {
		last := &l.entries[(l.next-1+len(l.entries))%len(l.entries)]
		if last.Name == e.Name && last.Device == e.Device && last.DeviceIndex == e.DeviceIndex {
			last.Count += e.Count
			last.Tick = e.Tick
			last.Value = e.Value
			return
		}
	}

	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.size < len(l.entries) {
		l.size++
	}
}

// Recent returns the stored events, newest first.
func (l *ActionLogData) Recent() []ActionEvent {
	out := make([]ActionEvent, 0, l.size)
	for i := 1; i <= l.size; i++ {
		out = append(out, l.entries[(l.next-i+len(l.entries))%len(l.entries)])
	}
	return out
}

func (l *ActionLogData) Len() int { return l.size }
