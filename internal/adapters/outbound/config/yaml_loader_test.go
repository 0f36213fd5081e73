package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/valorisation/coherence/internal/adapters/outbound/config"
	"github.com/valorisation/coherence/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".coherence.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
locale: en
strict: true
min_severity: warning
skip:
  - CROISSANCE_VS_HISTORIQUE
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleEN, cfg.Locale)
	assert.True(t, cfg.Strict)
	assert.Equal(t, domain.SeverityWarning, cfg.MinSeverity)
	assert.Equal(t, []domain.AlertID{domain.AlertCroissanceVsHistorique}, cfg.Skip)
}

func TestYAMLLoader_ExplicitFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: en\n"), 0644))

	cfg, err := appconfig.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleEN, cfg.Locale)
}

func TestYAMLLoader_DefaultsLocaleWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "strict: true\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleFR, cfg.Locale)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .coherence.yaml")
}

func TestYAMLLoader_UnknownAlertID(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
skip:
  - NOT_A_RULE
`)
	_, err := appconfig.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .coherence.yaml")
	assert.Contains(t, err.Error(), "NOT_A_RULE")
}
