package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/logger"
)

// AlertSettingsService manages the console's alert appearance settings.
// Settings resolve in layers: hardcoded defaults, then the deploy-time
// defaults file, then the operator's stored override. An invalid layer is
// skipped whole, never merged field by field.
type AlertSettingsService struct {
	mu           sync.RWMutex
	defaultsFile string
	storeFile    string
	current      models.AlertSettings
}

func NewAlertSettingsService(defaultsFile, storeFile string) *AlertSettingsService {
	s := &AlertSettingsService{
		defaultsFile: defaultsFile,
		storeFile:    storeFile,
		current:      models.DefaultAlertSettings(),
	}
	if loaded, ok := s.loadFile(defaultsFile); ok {
		s.current = loaded
	}
	if loaded, ok := s.loadFile(storeFile); ok {
		s.current = loaded
	}
	return s
}

// Get returns the effective settings.
func (s *AlertSettingsService) Get() models.AlertSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update stores an operator override and makes it effective immediately.
func (s *AlertSettingsService) Update(settings models.AlertSettings) error {
	if !settings.Valid() {
		return fmt.Errorf("alert settings are incomplete: position, duration and all four types are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storeFile != "" {
		raw, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode alert settings: %w", err)
		}
		if err := os.WriteFile(s.storeFile, raw, 0644); err != nil {
			return fmt.Errorf("failed to persist alert settings: %w", err)
		}
	}

	s.current = settings
	return nil
}

// Reset discards the operator override and falls back to the defaults layer.
func (s *AlertSettingsService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storeFile != "" {
		if err := os.Remove(s.storeFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stored alert settings: %w", err)
		}
	}

	s.current = models.DefaultAlertSettings()
	if loaded, ok := s.loadFile(s.defaultsFile); ok {
		s.current = loaded
	}
	return nil
}

func (s *AlertSettingsService) loadFile(path string) (models.AlertSettings, bool) {
	var zero models.AlertSettings
	if path == "" {
		return zero, false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warn("Failed to read alert settings file",
				zap.String("file", path),
				zap.Error(err))
		}
		return zero, false
	}
	var settings models.AlertSettings
	if err := json.Unmarshal(raw, &settings); err != nil || !settings.Valid() {
		logger.Log.Warn("Ignoring invalid alert settings file",
			zap.String("file", path),
			zap.Error(err))
		return zero, false
	}
	return settings, true
}
