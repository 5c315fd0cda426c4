package llm

import (
	"os"
	"strconv"
)

// TaskType identifies which pipeline stage a generation call serves.
type TaskType string

const (
	TaskIntent    TaskType = "intent"
	TaskArchitect TaskType = "architect"
	TaskAnnotate  TaskType = "annotate"
	TaskOptimize  TaskType = "optimize"
)

// Provider selects the concrete generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-stage decoding parameters.
// Temperature defaults to 0 for every stage: the design goal is minimizing
// structural/parse failures, not output diversity.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generation subsystem. It is built
// once at process start and passed by reference into constructors; nothing
// mutates it afterwards.
type Config struct {
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	LogCalls   bool
	LedgerPath string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultOpenAIEndpoint = "https://api.openai.com"
	defaultOpenAIModel    = "gpt-4o-mini"
)

// DefaultConfig returns a Config targeting a local Ollama instance.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOllama,
		Endpoint:   defaultOllamaEndpoint,
		Model:      defaultOllamaModel,
		TimeoutMs:  60000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskIntent:    {Temperature: 0, MaxTokens: 512, TimeoutMs: 30000},
			TaskArchitect: {Temperature: 0, MaxTokens: 1024, TimeoutMs: 60000},
			TaskAnnotate:  {Temperature: 0, MaxTokens: 2048, TimeoutMs: 90000},
			TaskOptimize:  {Temperature: 0, MaxTokens: 2048, TimeoutMs: 90000},
		},
	}
}

// LoadConfig reads generation configuration from environment variables,
// falling back to defaults for any unset values. Selecting the openai
// provider swaps the endpoint/model defaults before env overrides apply.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("WODFORGE_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.Endpoint = defaultOpenAIEndpoint
		cfg.Model = defaultOpenAIModel
	}

	if v := os.Getenv("WODFORGE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("WODFORGE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("WODFORGE_LLM_LOG"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	cfg.LedgerPath = os.Getenv("WODFORGE_LLM_LEDGER")

	if v := os.Getenv("WODFORGE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("WODFORGE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("WODFORGE_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			for task, tc := range cfg.Tasks {
				tc.MaxTokens = n
				cfg.Tasks[task] = tc
			}
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskIntent, "WODFORGE_LLM_INTENT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskArchitect, "WODFORGE_LLM_ARCHITECT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAnnotate, "WODFORGE_LLM_ANNOTATE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskOptimize, "WODFORGE_LLM_OPTIMIZE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
