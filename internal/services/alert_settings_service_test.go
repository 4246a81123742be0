package services_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/internal/services"
)

func TestAlertSettings_DefaultsWhenNoFiles(t *testing.T) {
	dir := t.TempDir()
	svc := services.NewAlertSettingsService(
		filepath.Join(dir, "missing_defaults.json"),
		filepath.Join(dir, "missing_store.json"),
	)

	settings := svc.Get()
	assert.Equal(t, "bottom-right", settings.Position)
	assert.Equal(t, 3000, settings.Duration)
	assert.True(t, settings.DefaultShowDismissButton)
	assert.Contains(t, settings.Types, models.MessageTypeError)
}

func TestAlertSettings_UpdatePersistsAndReloads(t *testing.T) {
	dir := t.TempDir()
	storeFile := filepath.Join(dir, "store.json")
	svc := services.NewAlertSettingsService("", storeFile)

	updated := models.DefaultAlertSettings()
	updated.Position = "top-center"
	updated.Duration = 5000
	require.NoError(t, svc.Update(updated))

	assert.Equal(t, "top-center", svc.Get().Position)

	// A fresh instance over the same store picks the override up.
	svc2 := services.NewAlertSettingsService("", storeFile)
	assert.Equal(t, "top-center", svc2.Get().Position)
	assert.Equal(t, 5000, svc2.Get().Duration)
}

func TestAlertSettings_RejectsIncompleteUpdate(t *testing.T) {
	svc := services.NewAlertSettingsService("", "")

	incomplete := models.AlertSettings{Position: "top-left", Duration: 1000}
	err := svc.Update(incomplete)
	require.Error(t, err)

	// The effective settings are untouched.
	assert.Equal(t, "bottom-right", svc.Get().Position)
}

func TestAlertSettings_ResetDropsOverride(t *testing.T) {
	dir := t.TempDir()
	storeFile := filepath.Join(dir, "store.json")
	svc := services.NewAlertSettingsService("", storeFile)

	updated := models.DefaultAlertSettings()
	updated.Position = "top-right"
	require.NoError(t, svc.Update(updated))
	require.Equal(t, "top-right", svc.Get().Position)

	require.NoError(t, svc.Reset())
	assert.Equal(t, "bottom-right", svc.Get().Position)

	_, err := os.Stat(storeFile)
	assert.True(t, os.IsNotExist(err))
}

func TestAlertSettings_InvalidStoredFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	storeFile := filepath.Join(dir, "store.json")
	require.NoError(t, os.WriteFile(storeFile, []byte("{not json"), 0644))

	svc := services.NewAlertSettingsService("", storeFile)
	assert.Equal(t, "bottom-right", svc.Get().Position)
}

func TestAlertSettings_DefaultsFileLayer(t *testing.T) {
	dir := t.TempDir()
	defaultsFile := filepath.Join(dir, "defaults.json")

	defaults := models.DefaultAlertSettings()
	defaults.Position = "top-left"
	raw, err := json.Marshal(defaults)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(defaultsFile, raw, 0644))

	svc := services.NewAlertSettingsService(defaultsFile, filepath.Join(dir, "store.json"))
	assert.Equal(t, "top-left", svc.Get().Position)
}
