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

	"github.com/poiesic/librit"
	"github.com/poiesic/librit/component/langchain"
	"github.com/poiesic/librit/config"
	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/pipeline"
	"github.com/poiesic/librit/reembed"
	"github.com/poiesic/librit/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "librit",
		Usage: "Strategy-driven document knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a dataset of the project into the knowledge base",
				ArgsUsage: "DATASET",
				Action:    ingestCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the project YAML declaration",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Directory dataset file paths are relative to",
						Value: ".",
					},
					&cli.DurationFlag{
						Name:  "stage-timeout",
						Usage: "Timeout for each external pipeline call",
						Value: pipeline.DefaultStageTimeout,
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Search the knowledge base",
				ArgsUsage: "QUERY...",
				Action:    queryCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the project YAML declaration",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.StringSliceFlag{
						Name:    "metadata",
						Aliases: []string{"m"},
						Usage:   "Filter results by metadata (key=value, repeatable)",
					},
				),
			},
			{
				Name:   "strategies",
				Usage:  "List the strategies the project declares",
				Action: strategiesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the project YAML declaration",
						Required: true,
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "Show recent ingestion runs",
				Action: runsCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the project YAML declaration",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dataset",
						Usage: "Only show runs of this dataset",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of runs",
						Value:   10,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored chunks with new embeddings",
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
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
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
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are the flags configuring the langchaingo-backed
// components, shared by every command that opens a knowledge base.
func serviceFlags() []cli.Flag {
	defaults := langchain.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL for embeddings and extraction",
			Value: defaults.EmbeddingHost,
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: defaults.EmbeddingModel,
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Extraction model name",
			Value: defaults.ExtractorModel,
		},
	}
}

func componentConfig(c *cli.Context) *langchain.Config {
	return langchain.NewConfig(
		langchain.WithHost(c.String("host")),
		langchain.WithEmbeddingModel(c.String("embedding-model")),
		langchain.WithExtractorModel(c.String("extractor-model")),
	)
}

func openKnowledgeBase(c *cli.Context, opts ...librit.KnowledgeBaseOption) (*librit.KnowledgeBase, error) {
	project, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	opts = append(opts, librit.WithComponentConfig(componentConfig(c)))
	return librit.Open(c.String("db"), project, opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one dataset name argument")
	}
	dataset := c.Args().First()

	kb, err := openKnowledgeBase(c,
		librit.WithSource(os.DirFS(c.String("source"))),
		librit.WithStageTimeout(c.Duration("stage-timeout")))
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer kb.Close()

	monitor := pipeline.NewWriterMonitor(os.Stderr)
	record, err := kb.Ingest(context.Background(), dataset, monitor)
	if err != nil {
		if record != nil {
			// Partial and failed runs still report what happened
			fmt.Println(record.Message())
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Println(record.Message())
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query text is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	filter, err := parseMetadata(c.StringSlice("metadata"))
	if err != nil {
		return err
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer kb.Close()

	ctx := context.Background()
	var results []*core.SearchResult
	if len(filter) > 0 {
		results, err = kb.QueryWithMetadata(ctx, query, filter, c.Int("limit"))
	} else {
		results, err = kb.Query(ctx, query, c.Int("limit"))
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. [%.3f] %s\n", i+1, result.Score, result.Chunk.Text)
	}
	return nil
}

func strategiesCommand(c *cli.Context) error {
	project, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	fmt.Println("universal (built-in default)")
	for _, s := range project.RAG.Strategies {
		parser := s.Parser
		if parser == "" {
			parser = "auto"
		}
		fmt.Printf("%s: parser=%s extractors=%s chunker=%s embedder=%s store=%s\n",
			s.Name, parser, strings.Join(s.Extractors, ","),
			s.Chunker, s.Embedder, s.Store)
	}
	return nil
}

func runsCommand(c *cli.Context) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer kb.Close()

	ctx := context.Background()
	var records []*core.IngestionRecord
	if dataset := c.String("dataset"); dataset != "" {
		records, err = kb.DatasetRuns(ctx, dataset, c.Int("limit"))
	} else {
		records, err = kb.Runs(ctx, c.Int("limit"))
	}
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  %s\n", record.StartedAt.Format(time.RFC3339), record.Message())
		for _, failure := range record.Failed {
			fmt.Printf("    %s: failed at %s: %s\n", failure.Path, failure.Stage, failure.Reason)
		}
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

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	cfg := langchain.NewConfig(
		langchain.WithHost(c.String("embedding-host")),
		langchain.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid component configuration: %w", err)
	}

	embedder, err := langchain.NewEmbedder(cfg)
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

func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filter := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata filter %q: expected key=value", pair)
		}
		filter[key] = value
	}
	return filter, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
