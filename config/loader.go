package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// AppConfig is the full runtime configuration: where the data files live,
// how the HTTP server is exposed, and the advisor tuning knobs.
type AppConfig struct {
	Server  ServerConfig    `json:"server"`
	Data    DataConfig      `json:"data"`
	Advisor AdvisorSettings `json:"advisor"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            string `json:"port"`
	MaxRequestBytes int64  `json:"max_request_bytes"`
}

// DataConfig points at the JSON data files. An empty reference corpus path
// disables reference retrieval; an empty analytics path keeps analytics in
// memory only.
type DataConfig struct {
	KnowledgeBase   string `json:"knowledge_base"`
	ReferenceCorpus string `json:"reference_corpus"`
	Analytics       string `json:"analytics"`
}

func defaultAppConfig() *AppConfig {
	cfg := &AppConfig{
		Server: ServerConfig{
			Port:            "8080",
			MaxRequestBytes: 1 << 20,
		},
		Data: DataConfig{
			KnowledgeBase:   "./data/knowledge_base.json",
			ReferenceCorpus: "./data/reference_corpus.json",
			Analytics:       "./data/analytics.json",
		},
	}
	cfg.Advisor.ApplyDefaults()
	return cfg
}

// LoadAppConfig reads the advising.yaml configuration file from configPath
// using Viper. If the file does not exist, sensible defaults are returned.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	v := viper.New()
	v.SetConfigName("advising")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.max_request_bytes", cfg.Server.MaxRequestBytes)
	v.SetDefault("data.knowledge_base", cfg.Data.KnowledgeBase)
	v.SetDefault("data.reference_corpus", cfg.Data.ReferenceCorpus)
	v.SetDefault("data.analytics", cfg.Data.Analytics)
	v.SetDefault("advisor.auto_send_threshold", cfg.Advisor.AutoSendThreshold)
	v.SetDefault("advisor.relevance_floor", cfg.Advisor.RelevanceFloor)
	v.SetDefault("advisor.ambiguity_margin", cfg.Advisor.AmbiguityMargin)
	v.SetDefault("advisor.diversity_weight", cfg.Advisor.DiversityWeight)
	v.SetDefault("advisor.tag_boost", cfg.Advisor.TagBoost)
	v.SetDefault("advisor.max_references", cfg.Advisor.MaxReferences)
	v.SetDefault("advisor.top_matches", cfg.Advisor.TopMatches)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading advising.yaml: %w", err)
	}

	cfg.Server.Port = v.GetString("server.port")
	cfg.Server.MaxRequestBytes = v.GetInt64("server.max_request_bytes")
	cfg.Data.KnowledgeBase = v.GetString("data.knowledge_base")
	cfg.Data.ReferenceCorpus = v.GetString("data.reference_corpus")
	cfg.Data.Analytics = v.GetString("data.analytics")
	cfg.Advisor.AutoSendThreshold = v.GetFloat64("advisor.auto_send_threshold")
	cfg.Advisor.RelevanceFloor = v.GetFloat64("advisor.relevance_floor")
	cfg.Advisor.AmbiguityMargin = v.GetFloat64("advisor.ambiguity_margin")
	cfg.Advisor.DiversityWeight = v.GetFloat64("advisor.diversity_weight")
	cfg.Advisor.TagBoost = v.GetFloat64("advisor.tag_boost")
	cfg.Advisor.MaxReferences = v.GetInt("advisor.max_references")
	cfg.Advisor.TopMatches = v.GetInt("advisor.top_matches")
	cfg.Advisor.StaticFields = v.GetStringMapString("advisor.static_fields")
	cfg.Advisor.ApplyDefaults()

	if conflicts := cfg.Advisor.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid advisor settings: %v", conflicts)
	}

	return cfg, nil
}
