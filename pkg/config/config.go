// Package config maps the viper configuration tree onto typed settings.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/theapemachine/hybrid-travel/pkg/errors"
)

// Server holds the HTTP listener settings. RateLimit is the number of chat
// requests one client may make per minute; 0 disables the limit.
type Server struct {
	Host      string
	Port      int
	RateLimit int
}

// Log holds the logger settings.
type Log struct {
	Level string
	File  string
}

// Session holds the conversation store settings. A zero TTL keeps sessions
// for the life of the process.
type Session struct {
	TTL time.Duration
}

// Embedding selects and configures the embedding backend.
type Embedding struct {
	Provider  string
	Model     string
	Dimension int
	CacheDir  string
	BaseURL   string
	BatchSize int
}

// Qdrant configures the vector index.
type Qdrant struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	TopK       int
}

// Neo4j configures the optional knowledge graph.
type Neo4j struct {
	Enabled  bool
	URI      string
	User     string
	Password string
	Database string
	Timeout  time.Duration
}

// Chat selects and configures the chat completion backend. A zero Timeout
// leaves each request bounded only by its caller's context.
type Chat struct {
	Provider    string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Keys are the credentials of every hosted backend.
type Keys struct {
	Deepseek  string
	OpenAI    string
	Anthropic string
	Cohere    string
}

// Config holds the complete configuration for the application.
type Config struct {
	Server    Server
	Log       Log
	Session   Session
	Embedding Embedding
	Qdrant    Qdrant
	Neo4j     Neo4j
	Chat      Chat
	Keys      Keys
}

/*
SetDefaults registers the built-in defaults and binds environment variables,
so NEO4J_PASSWORD overrides neo4j.password and DEEPSEEK_API_KEY overrides
deepseek.api_key.
*/
func SetDefaults(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("session.ttl", "0s")

	v.SetDefault("embedding.provider", "fastembed")
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.dimension", 384)
	v.SetDefault("embedding.cache_dir", "local_cache")
	v.SetDefault("embedding.base_url", "")
	v.SetDefault("embedding.batch_size", 32)

	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.api_key", "")
	v.SetDefault("qdrant.tls", false)
	v.SetDefault("qdrant.collection", "vietnam-travel")
	v.SetDefault("qdrant.top_k", 5)

	v.SetDefault("neo4j.enabled", true)
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "")
	v.SetDefault("neo4j.timeout", "5s")

	v.SetDefault("chat.provider", "deepseek")
	v.SetDefault("chat.model", "")
	v.SetDefault("chat.base_url", "")
	v.SetDefault("chat.max_tokens", 600)
	v.SetDefault("chat.temperature", 0.7)
	v.SetDefault("chat.timeout", "0s")

	v.SetDefault("deepseek.api_key", "")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("cohere.api_key", "")
}

// Load reads the configuration from the global viper instance.
func Load() *Config {
	return FromViper(viper.GetViper())
}

// FromViper reads the configuration from v, applying defaults first.
func FromViper(v *viper.Viper) *Config {
	SetDefaults(v)

	return &Config{
		Server: Server{
			Host:      v.GetString("server.host"),
			Port:      v.GetInt("server.port"),
			RateLimit: v.GetInt("server.rate_limit"),
		},
		Log: Log{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Session: Session{
			TTL: v.GetDuration("session.ttl"),
		},
		Embedding: Embedding{
			Provider:  strings.ToLower(v.GetString("embedding.provider")),
			Model:     v.GetString("embedding.model"),
			Dimension: v.GetInt("embedding.dimension"),
			CacheDir:  v.GetString("embedding.cache_dir"),
			BaseURL:   v.GetString("embedding.base_url"),
		},
		Qdrant: Qdrant{
			Host:       v.GetString("qdrant.host"),
			Port:       v.GetInt("qdrant.port"),
			APIKey:     v.GetString("qdrant.api_key"),
			UseTLS:     v.GetBool("qdrant.tls"),
			Collection: v.GetString("qdrant.collection"),
			TopK:       v.GetInt("qdrant.top_k"),
		},
		Neo4j: Neo4j{
			Enabled:  v.GetBool("neo4j.enabled"),
			URI:      v.GetString("neo4j.uri"),
			User:     v.GetString("neo4j.user"),
			Password: v.GetString("neo4j.password"),
			Database: v.GetString("neo4j.database"),
			Timeout:  v.GetDuration("neo4j.timeout"),
		},
		Chat: Chat{
			Provider:    strings.ToLower(v.GetString("chat.provider")),
			Model:       v.GetString("chat.model"),
			BaseURL:     v.GetString("chat.base_url"),
			MaxTokens:   v.GetInt("chat.max_tokens"),
			Temperature: v.GetFloat64("chat.temperature"),
			Timeout:     v.GetDuration("chat.timeout"),
		},
		Keys: Keys{
			Deepseek:  v.GetString("deepseek.api_key"),
			OpenAI:    v.GetString("openai.api_key"),
			Anthropic: v.GetString("anthropic.api_key"),
			Cohere:    v.GetString("cohere.api_key"),
		},
	}
}

// ChatKey returns the credential of the configured chat backend. Ollama runs
// locally and needs none.
func (cfg *Config) ChatKey() (name, value string, required bool) {
	switch cfg.Chat.Provider {
	case "openai":
		return "OPENAI_API_KEY", cfg.Keys.OpenAI, true
	case "anthropic":
		return "ANTHROPIC_API_KEY", cfg.Keys.Anthropic, true
	case "ollama":
		return "", "", false
	default:
		return "DEEPSEEK_API_KEY", cfg.Keys.Deepseek, true
	}
}

// EmbeddingKey returns the credential of the configured embedding backend.
func (cfg *Config) EmbeddingKey() (name, value string, required bool) {
	switch cfg.Embedding.Provider {
	case "openai":
		return "OPENAI_API_KEY", cfg.Keys.OpenAI, true
	case "cohere":
		return "COHERE_API_KEY", cfg.Keys.Cohere, true
	default:
		return "", "", false
	}
}

// Validate checks that the settings needed to answer questions are present.
// Every problem is reported, not just the first.
func (cfg *Config) Validate() error {
	var errs []any

	if name, value, required := cfg.ChatKey(); required && value == "" {
		errs = append(errs, errors.Missing(name))
	}

	if name, value, required := cfg.EmbeddingKey(); required && value == "" {
		errs = append(errs, errors.Missing(name))
	}

	if cfg.Qdrant.Host == "" {
		errs = append(errs, errors.Missing("QDRANT_HOST"))
	}

	if cfg.Qdrant.Collection == "" {
		errs = append(errs, errors.Missing("QDRANT_COLLECTION"))
	}

	if cfg.Embedding.Dimension <= 0 {
		errs = append(errs, errors.Missing("EMBEDDING_DIMENSION"))
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.NewError(errs...)
}
