package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("PORT", "")
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASS", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("KNOWLEDGE_FILE", "")
	t.Setenv("VENUE_NAME", "")
	t.Setenv("EMAIL_FROM_NAME", "")
	t.Setenv("UPLOAD_FOLDER", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, "1", cfg.AdminPass)
	assert.Equal(t, "yandex", cfg.LLMProvider)
	assert.False(t, cfg.LLMProviderSet)
	assert.Equal(t, 10*time.Second, cfg.LLMTimeout)
	assert.Equal(t, filepath.Join("data", "knowledge_base.json"), cfg.KnowledgeFile)
	assert.Equal(t, 100, cfg.LogBackupEvery)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "D-Space", cfg.EmailFromName)
	assert.Equal(t, "venue-backups", cfg.UploadFolder)
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("KNOWLEDGE_FILE", "/abs/kb.json")
	t.Setenv("MENU_FILE", "buttons.json")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("HISTORY_MAX_MESSAGES", "oops")
	t.Setenv("ENV", "production")
	t.Setenv("LLM_PROVIDER", "groq")

	cfg := LoadConfig()

	assert.Equal(t, "/abs/kb.json", cfg.KnowledgeFile)
	assert.Equal(t, filepath.Join(dir, "buttons.json"), cfg.MenuFile)
	assert.Equal(t, 3*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 20, cfg.HistoryMaxMessages)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "groq", cfg.LLMProvider)
	assert.True(t, cfg.LLMProviderSet)
}
