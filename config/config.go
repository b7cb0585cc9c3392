package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for policy constants. All of them are overridable via env so
// deployments can tune block signatures and thresholds without a rebuild.
const (
	DefaultMinTextLength    = 100
	DefaultChunkBudget      = 4000
	DefaultSummarySentences = 3
	DefaultConcurrency      = 5
	DefaultMaxAttempts      = 3
	DefaultFetchTimeout     = 30 * time.Second
	DefaultModelTimeout     = 120 * time.Second
	DefaultRetryBaseDelay   = 2 * time.Second
)

// Config holds all runtime settings for a pipeline run.
type Config struct {
	// Model endpoint settings
	OllamaBaseURL string
	OllamaModel   string
	CohereAPIKey  string // when set, Cohere is used instead of Ollama
	CohereModel   string
	ModelTimeout  time.Duration

	// Extraction settings
	FetchTimeout   time.Duration
	MinTextLength  int
	BlockPhrases   []string // empty means use extract.DefaultBlockPhrases
	MaxAttempts    int
	RetryBaseDelay time.Duration

	// Summarization settings
	ChunkBudget      int
	SummarySentences int

	// Pipeline settings
	Concurrency int

	// Trace output
	TraceDir string

	// Optional infrastructure (empty values disable the integration)
	RedisAddr    string
	RedisTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	S3Bucket     string
	S3Region     string
	S3Prefix     string

	// API server
	ListenAddr string
}

// Load reads configuration from the environment, loading .env first if
// present (non-fatal if missing).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OllamaBaseURL:    GetEnvOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:      GetEnvOrDefault("OLLAMA_MODEL", "llama3"),
		CohereAPIKey:     strings.TrimSpace(os.Getenv("COHERE_API_KEY")),
		CohereModel:      GetEnvOrDefault("COHERE_MODEL", "command-r"),
		TraceDir:         GetEnvOrDefault("TRACE_DIR", "traces"),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		KafkaTopic:       GetEnvOrDefault("KAFKA_TOPIC", "newsbrief.articles"),
		S3Bucket:         strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:         strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Prefix:         strings.Trim(os.Getenv("S3_PREFIX"), "/"),
		ListenAddr:       ":" + GetEnvOrDefault("PORT", "8080"),
		MinTextLength:    DefaultMinTextLength,
		ChunkBudget:      DefaultChunkBudget,
		SummarySentences: DefaultSummarySentences,
		Concurrency:      DefaultConcurrency,
		MaxAttempts:      DefaultMaxAttempts,
		FetchTimeout:     DefaultFetchTimeout,
		ModelTimeout:     DefaultModelTimeout,
		RetryBaseDelay:   DefaultRetryBaseDelay,
		RedisTTL:         24 * time.Hour,
	}

	var err error
	if cfg.MinTextLength, err = intEnv("MIN_TEXT_LENGTH", cfg.MinTextLength); err != nil {
		return nil, err
	}
	if cfg.ChunkBudget, err = intEnv("CHUNK_BUDGET", cfg.ChunkBudget); err != nil {
		return nil, err
	}
	if cfg.SummarySentences, err = intEnv("SUMMARY_SENTENCES", cfg.SummarySentences); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = intEnv("CONCURRENCY", cfg.Concurrency); err != nil {
		return nil, err
	}
	if cfg.MaxAttempts, err = intEnv("MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationEnv("FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return nil, err
	}
	if cfg.ModelTimeout, err = durationEnv("MODEL_TIMEOUT", cfg.ModelTimeout); err != nil {
		return nil, err
	}
	if cfg.RedisTTL, err = durationEnv("REDIS_TTL", cfg.RedisTTL); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("BLOCK_PHRASES")); v != "" {
		for _, p := range strings.Split(v, "|") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.BlockPhrases = append(cfg.BlockPhrases, p)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail mid-run.
func (c *Config) Validate() error {
	if c.CohereAPIKey == "" && c.OllamaBaseURL == "" {
		return fmt.Errorf("no model endpoint configured: set OLLAMA_BASE_URL or COHERE_API_KEY")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	if c.ChunkBudget < 1 {
		return fmt.Errorf("CHUNK_BUDGET must be positive, got %d", c.ChunkBudget)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	if c.SummarySentences < 1 {
		return fmt.Errorf("SUMMARY_SENTENCES must be at least 1, got %d", c.SummarySentences)
	}
	return nil
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 30s), got %q", key, v)
	}
	return d, nil
}
