package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cryops/cryops/internal/analytics"
	"github.com/cryops/cryops/internal/config"
	"github.com/cryops/cryops/internal/ghcrawl"
	"github.com/cryops/cryops/internal/llm"
	"github.com/cryops/cryops/internal/portfolio"
	"github.com/cryops/cryops/internal/server"
	"github.com/joho/godotenv"
)

const rateLimitBurst = 5

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	var cfg config.Config
	var provider string
	flag.StringVar(&provider, "provider", "", "LLM provider for portfolio copy: openai, anthropic, ollama (empty: no AI copy)")
	flag.StringVar(&cfg.Model, "model", "", "LLM model (default: per-provider)")
	flag.StringVar(&cfg.OutputDir, "output", "", "Directory for the portfolio bundle (empty: print the report only)")
	flag.StringVar(&cfg.Instructions, "instructions", "", "Custom instructions for the AI copy, e.g. tone or focus")
	flag.BoolVar(&cfg.Serve, "serve", false, "Serve the HTTP API instead of building one report")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cryops [flags] <github-url-or-username>\n       cryops -serve\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s", config.EnvUsage())
	}
	flag.Parse()

	cfg.Provider = llm.ProviderName(provider)

	switch {
	case cfg.Serve && flag.NArg() == 0:
	case !cfg.Serve && flag.NArg() == 1:
		username, ok := ghcrawl.ExtractUsername(flag.Arg(0))
		if !ok {
			log.Fatalf("not a GitHub profile URL or username: %q", flag.Arg(0))
		}
		cfg.Username = username
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatal(err)
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel(cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, &cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.GitHubToken == "" {
		slog.Warn("GITHUB_TOKEN not set, using anonymous GitHub access without pinned repos")
	}
	crawler := ghcrawl.NewCrawler(cfg.GitHubToken)

	if cfg.Serve {
		slog.Info("starting cryops api", "addr", cfg.Addr, "rate_limit", cfg.RateLimit)
		srv, err := server.New(crawler, logger, server.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			TrustedProxies: cfg.TrustedProxies,
			RateLimit:      cfg.RateLimit,
			Burst:          rateLimitBurst,
		})
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		return srv.Run(ctx, cfg.Addr)
	}

	slog.Info("starting cryops", "username", cfg.Username, "provider", cfg.Provider, "model", cfg.Model)
	result, err := crawler.Crawl(ctx, cfg.Username)
	if err != nil {
		return fmt.Errorf("crawling github: %w", err)
	}
	slog.Info("crawl complete",
		"repos", result.TotalRepos(),
		"pinned", result.TotalPinned(),
		"calendar_days", result.TotalDays(),
		"missing", result.Missing(),
	)

	report := analytics.BuildReport(result.Sources("https://github.com/"+cfg.Username), time.Now())

	var draft *portfolio.Copy
	if cfg.Provider != "" {
		provider, err := llm.NewProvider(llm.ProviderConfig{
			Name:       cfg.Provider,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			OllamaHost: cfg.OllamaHost,
			BaseURL:    cfg.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		slog.Info("drafting portfolio copy")
		draft, err = portfolio.NewWriter(provider).Draft(ctx, &report, cfg.Instructions)
		if err != nil {
			return fmt.Errorf("drafting portfolio copy: %w", err)
		}
	}

	if cfg.OutputDir == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if draft != nil {
			return enc.Encode(struct {
				analytics.Report
				Copy *portfolio.Copy `json:"copy"`
			}{report, draft})
		}
		return enc.Encode(report)
	}

	paths, err := portfolio.NewBundle(cfg.OutputDir).Write(cfg.Username, &report, draft)
	if err != nil {
		return fmt.Errorf("writing portfolio bundle: %w", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	slog.Info("done", "files_written", len(paths))
	return nil
}
