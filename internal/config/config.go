package config

import (
	"fmt"

	"github.com/cryops/cryops/internal/ghcrawl"
	"github.com/cryops/cryops/internal/llm"
	"github.com/ilyakaznacheev/cleanenv"
)

// Env is the environment part of the configuration.
type Env struct {
	GitHubToken      string   `env:"GITHUB_TOKEN"           env-description:"GitHub token; optional, raises rate limits and enables pinned repos"`
	OpenAIKey        string   `env:"OPENAI_API_KEY"         env-description:"OpenAI API key"`
	OpenAIBaseURL    string   `env:"OPENAI_BASE_URL"        env-description:"OpenAI-compatible API base URL; optional"`
	AnthropicKey     string   `env:"ANTHROPIC_API_KEY"      env-description:"Anthropic API key"`
	AnthropicBaseURL string   `env:"ANTHROPIC_BASE_URL"     env-description:"Anthropic API base URL; optional"`
	OllamaHost       string   `env:"OLLAMA_HOST"            env-description:"Ollama base URL"                env-default:"http://localhost:11434"`
	Addr             string   `env:"CRYOPS_ADDR"            env-description:"HTTP listen address"            env-default:":8080"`
	RateLimit        float64  `env:"CRYOPS_RATE_LIMIT"      env-description:"API requests per second per IP" env-default:"2"`
	AllowedOrigins   []string `env:"CRYOPS_ALLOWED_ORIGINS" env-description:"Comma separated CORS origins"   env-default:"*"`
	TrustedProxies   []string `env:"CRYOPS_TRUSTED_PROXIES" env-description:"Comma separated proxy IPs or CIDRs allowed to set X-Forwarded-For"`
}

// Config holds all runtime configuration for cryops.
type Config struct {
	Username       string
	GitHubToken    string
	Provider       llm.ProviderName
	Model          string
	OllamaHost     string
	APIKey         string
	BaseURL        string
	OutputDir      string
	Instructions   string
	Serve          bool
	Addr           string
	RateLimit      float64
	AllowedOrigins []string
	TrustedProxies []string
	Verbose        bool
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if !c.Serve {
		if c.Username == "" {
			return fmt.Errorf("github username or profile URL is required")
		}
		if !ghcrawl.ValidUsername(c.Username) {
			return fmt.Errorf("invalid github username %q", c.Username)
		}
	}
	if c.Serve && c.Addr == "" {
		return fmt.Errorf("CRYOPS_ADDR must not be empty in serve mode")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("CRYOPS_RATE_LIMIT must not be negative")
	}

	switch c.Provider {
	case "":
		return nil
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM provider %q: must be openai, anthropic, or ollama", c.Provider)
	}
	if c.APIKey == "" && c.Provider != llm.ProviderOllama {
		return fmt.Errorf("%s requires an API key (set %s)", c.Provider, envKeyForProvider(c.Provider))
	}
	return nil
}

// LoadFromEnv populates environment-dependent fields (tokens, keys, hosts,
// server settings). Call it after Provider is set.
func (c *Config) LoadFromEnv() error {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	c.GitHubToken = env.GitHubToken
	c.OllamaHost = env.OllamaHost
	c.Addr = env.Addr
	c.RateLimit = env.RateLimit
	c.AllowedOrigins = env.AllowedOrigins
	c.TrustedProxies = env.TrustedProxies
	switch c.Provider {
	case llm.ProviderOpenAI:
		c.APIKey = env.OpenAIKey
		c.BaseURL = env.OpenAIBaseURL
	case llm.ProviderAnthropic:
		c.APIKey = env.AnthropicKey
		c.BaseURL = env.AnthropicBaseURL
	}
	return nil
}

// DefaultModel returns the default model name for the given provider.
func DefaultModel(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "gpt-4o-mini"
	case llm.ProviderAnthropic:
		return "claude-sonnet-4-5"
	case llm.ProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

// EnvUsage describes the environment variables for -help output.
func EnvUsage() string {
	text, err := cleanenv.GetDescription(&Env{}, nil)
	if err != nil {
		return ""
	}
	return text
}

func envKeyForProvider(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
