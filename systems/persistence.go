package systems

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/actionmap/input"
	"github.com/automoto/actionmap/logger"
	"github.com/quasilyte/gdata"
)

const bindingsKey = "bindings"

// SavedBindings is the on-disk form of user binding overrides
type SavedBindings struct {
	Version int             `json:"version"`
	Actions input.ActionSet `json:"actions"`
}

const savedBindingsVersion = 1

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for binding storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return fmt.Errorf("open data store: %w", err)
	}
	gdataManager = m
	return nil
}

// PersistenceEnabled reports whether a data store was opened
func PersistenceEnabled() bool {
	return gdataManager != nil
}

// LoadBindings returns the saved overrides, or nil when nothing is stored
func LoadBindings() (*input.ActionSet, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(bindingsKey)
	if err != nil {
		return nil, fmt.Errorf("load bindings: %w", err)
	}
	return decodeBindings(data)
}

// SaveBindings stores set as the user's overrides
func SaveBindings(set input.ActionSet) error {
	if gdataManager == nil {
		return nil
	}

	data, err := encodeBindings(set)
	if err != nil {
		return err
	}
	if err := gdataManager.SaveItem(bindingsKey, data); err != nil {
		return fmt.Errorf("save bindings: %w", err)
	}
	logger.L().Info("Bindings saved", "actions", len(set.Actions))
	return nil
}

// ClearBindings removes any saved overrides
func ClearBindings() error {
	if gdataManager == nil {
		return nil
	}

	// Save empty data to clear the overrides
	if err := gdataManager.SaveItem(bindingsKey, nil); err != nil {
		return fmt.Errorf("clear bindings: %w", err)
	}
	return nil
}

func encodeBindings(set input.ActionSet) ([]byte, error) {
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("encode bindings: %w", err)
	}
	data, err := json.Marshal(SavedBindings{Version: savedBindingsVersion, Actions: set})
	if err != nil {
		return nil, fmt.Errorf("encode bindings: %w", err)
	}
	return data, nil
}

func decodeBindings(data []byte) (*input.ActionSet, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var saved SavedBindings
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("decode bindings: %w", err)
	}
	if saved.Version != savedBindingsVersion {
		return nil, fmt.Errorf("decode bindings: unsupported version %d", saved.Version)
	}
	if err := saved.Actions.Validate(); err != nil {
		return nil, fmt.Errorf("decode bindings: %w", err)
	}
	return &saved.Actions, nil
}
