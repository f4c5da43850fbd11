package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	// An empty directory has no advising.yaml, so defaults apply.
	cfg, err := LoadAppConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, int64(1<<20), cfg.Server.MaxRequestBytes)
	require.Equal(t, "./data/knowledge_base.json", cfg.Data.KnowledgeBase)
	require.InDelta(t, 0.95, cfg.Advisor.AutoSendThreshold, 1e-9)
	require.Equal(t, 3, cfg.Advisor.MaxReferences)
}

func TestLoadAppConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `server:
  port: "9000"
data:
  knowledge_base: ./kb.json
  reference_corpus: ""
advisor:
  auto_send_threshold: 0.9
  relevance_floor: 0.5
  static_fields:
    advising_email: advising@example.edu
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "advising.yaml"), []byte(content), 0o644))

	cfg, err := LoadAppConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Server.Port)
	require.Equal(t, "./kb.json", cfg.Data.KnowledgeBase)
	require.Empty(t, cfg.Data.ReferenceCorpus)
	require.InDelta(t, 0.9, cfg.Advisor.AutoSendThreshold, 1e-9)
	require.InDelta(t, 0.5, cfg.Advisor.RelevanceFloor, 1e-9)
	require.Equal(t, "advising@example.edu", cfg.Advisor.StaticFields["advising_email"])

	// Keys the file does not set keep their defaults.
	require.InDelta(t, 0.08, cfg.Advisor.AmbiguityMargin, 1e-9)
	require.Equal(t, 3, cfg.Advisor.TopMatches)
}

func TestLoadAppConfigRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	content := `advisor:
  auto_send_threshold: 1.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "advising.yaml"), []byte(content), 0o644))

	_, err := LoadAppConfig(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "auto_send_threshold")
}
