package input

// EdgeState tracks whether a boolean input is newly or steadily held or released.
type EdgeState int

const (
	Press EdgeState = iota
	FirstPress
	Release
	FirstRelease
)

func (s EdgeState) String() string {
	switch s {
	case Press:
		return "Press"
	case FirstPress:
		return "FirstPress"
	case Release:
		return "Release"
	case FirstRelease:
		return "FirstRelease"
	}
	return "EdgeState(?)"
}

// Held reports Press or FirstPress.
func (s EdgeState) Held() bool { return s == Press || s == FirstPress }

// RawState is the signal a platform layer reports for a single event.
type RawState int

const (
	RawPress RawState = iota
	RawRelease
	RawRepeat
)

// handleStateChange applies one raw press/release to states[key].
//
// A fresh key is seeded with FirstPress/FirstRelease. An existing key toggles:
// a press on FirstPress becomes Press, a press on anything else becomes
// FirstPress, and the same for releases. Two presses inside one tick therefore
// land back on FirstPress.
func handleStateChange[K comparable](key K, raw RawState, states map[K]EdgeState) {
	if raw == RawRepeat {
		return
	}
	pressed := raw == RawPress

	current, ok := states[key]
	if !ok {
		if pressed {
			states[key] = FirstPress
		} else {
			states[key] = FirstRelease
		}
		return
	}

	if pressed {
		if current == FirstPress {
			states[key] = Press
		} else {
			states[key] = FirstPress
		}
		return
	}

	if current == FirstRelease {
		states[key] = Release
	} else {
		states[key] = FirstRelease
	}
}

// advance rolls every first-frame state into its steady state.
func advance[K comparable](states map[K]EdgeState) {
	for key, s := range states {
		switch s {
		case FirstPress:
			states[key] = Press
		case FirstRelease:
			states[key] = Release
		}
	}
}

func held[K comparable](states map[K]EdgeState, key K) bool {
	s, ok := states[key]
	return ok && s.Held()
}

func is[K comparable](states map[K]EdgeState, key K, want EdgeState) bool {
	s, ok := states[key]
	return ok && s == want
}
