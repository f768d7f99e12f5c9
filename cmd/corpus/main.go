// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/corpus"
	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/ai/openai"
	"github.com/poiesic/corpus/config"
	"github.com/poiesic/corpus/ingestion"
	"github.com/poiesic/corpus/reembed"
	"github.com/poiesic/corpus/router"
	"github.com/poiesic/corpus/search"
	"github.com/poiesic/corpus/storage/badger"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "corpus",
		Usage: "Document corpus with layered semantic, pattern and keyword search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "corpus.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest documents from a JSON or JSON-Lines file",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the documents file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (overrides config)",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Search the corpus; strategies are tried in order until one matches",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (overrides config)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results per strategy (overrides config)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "List records in a category instead of running the strategy chain",
					},
				},
			},
			{
				Name:   "ensure-indexes",
				Usage:  "Register the standard index definitions; safe to re-run",
				Action: ensureIndexesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (overrides config)",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored documents with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "route",
				Usage:  "Classify a message onto an agent using the routing table",
				Action: routeCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	records, err := ingestion.LoadRecords(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	var opts []ingestion.Option
	if cfg.Ingest.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(cfg.Ingest.PoolSize))
	}
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(ctx, records)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Inserted: %d\n", report.Inserted)
	fmt.Fprintf(os.Stderr, "Skipped:  %d\n", report.Skipped)
	fmt.Fprintf(os.Stderr, "Failed:   %d\n", len(report.Failed))
	for _, failure := range report.Failed {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", failure.Id, failure.Err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	category := c.String("category")
	if query == "" && category == "" {
		return fmt.Errorf("a search query or --category is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	limit := cfg.Search.Limit
	if c.Int("limit") > 0 {
		limit = c.Int("limit")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if category != "" {
		records, err := db.Documents().FindByCategory(ctx, category, limit)
		if err != nil {
			return fmt.Errorf("category lookup failed: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for i, record := range records {
			fmt.Printf("%2d. [%s] %s  %s\n", i+1, record.Category, record.Id, record.Title)
		}
		return nil
	}

	engine, err := db.NewSearchEngine(search.WithMinSimilarity(cfg.Search.MinSimilarity))
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	results, err := engine.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, result := range results {
		fmt.Printf("%2d. [%s %.3f] %s  %s\n",
			i+1, result.Strategy, result.Score, result.Record.Id, result.Record.Title)
	}
	return nil
}

func ensureIndexesCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	specs, err := db.Indexes().ListIndexes(ctx)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		fmt.Fprintf(os.Stderr, "%s (%s on %s)\n", spec.Name, spec.Kind, spec.Field)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewDocumentRepository(backend)

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func routeCommand(c *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("a message to classify is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	rules := make([]router.Rule, 0, len(cfg.Router.Rules))
	for _, rule := range cfg.Router.Rules {
		rules = append(rules, router.Rule{
			Agent:    router.AgentID(rule.Agent),
			Keywords: rule.Keywords,
		})
	}

	r := router.New(router.AgentID(cfg.Router.Fallback), rules...)
	fmt.Println(r.Classify(text))
	return nil
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if db := c.String("db"); db != "" {
		cfg.Store.Path = db
	}
	return cfg, nil
}

func openDatabase(cfg *config.AppConfig) (*corpus.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedder.Host),
		ai.WithEmbeddingModel(cfg.Embedder.Model),
		ai.WithDimensions(cfg.Embedder.Dimensions),
	)

	opts := []corpus.DatabaseOption{corpus.WithAIConfig(aiConfig)}
	if cfg.Store.InMemory {
		opts = append(opts, corpus.WithInMemory())
	}

	db, err := corpus.NewDatabase(cfg.Store.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
