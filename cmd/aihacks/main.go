// Copyright 2025 The aihacks Authors
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

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/ai/anthropic"
	"github.com/ltejedor/aihacks/ai/openai"
	"github.com/ltejedor/aihacks/enrich"
	"github.com/ltejedor/aihacks/organize"
	"github.com/ltejedor/aihacks/reembed"
	"github.com/ltejedor/aihacks/search"
	"github.com/ltejedor/aihacks/storage/badger"
	"github.com/ltejedor/aihacks/vectorize"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "aihacks",
		Usage: "Curate evergreen resources from exported chat history",
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
				Name:   "organize",
				Usage:  "Cluster exported chat messages into candidate resources",
				Action: organizeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the exported chat JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the organized resource list",
						Value:   "resources.json",
					},
					&cli.StringFlag{
						Name:  "judge-model",
						Usage: "Chat model used for resource classification",
					},
					&cli.IntFlag{
						Name:  "window-size",
						Usage: "Number of surrounding messages shown to the judge on each side",
						Value: 10,
					},
					&cli.DurationFlag{
						Name:  "pacing",
						Usage: "Delay between judge calls",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "enrich",
				Usage:  "Rate and enrich organized resources into web resources",
				Action: enrichCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the organized resource list",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "checkpoint",
						Aliases: []string{"c"},
						Usage:   "Path to the enrichment checkpoint file",
						Value:   "web_resources.json",
					},
					&cli.StringFlag{
						Name:  "rater-model",
						Usage: "Model used for evergreen rating",
					},
					&cli.StringFlag{
						Name:  "enricher-model",
						Usage: "Model used for summary and documentation generation",
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Maximum attempts per AI call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Delay before each retry attempt",
						Value: 5 * time.Second,
					},
					&cli.DurationFlag{
						Name:  "pacing",
						Usage: "Delay between resources",
						Value: 3 * time.Second,
					},
					&cli.IntFlag{
						Name:  "save-every",
						Usage: "Write the checkpoint every N processed resources",
						Value: 10,
					},
				},
			},
			{
				Name:   "vectorize",
				Usage:  "Embed enriched resources and upload them into the row store",
				Action: vectorizeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the enriched web resource file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "insert-chunk",
						Usage: "Number of rows to insert in each transaction",
						Value: 200,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search uploaded resource rows by semantic similarity",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Only return rows carrying this tag",
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: search.DefaultMaxHits,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all resource rows with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of rows to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N rows",
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

// openAIConfig builds an ai.Config from the environment and command flags.
// The OPENAI_API_KEY environment variable must be set.
func openAIConfig(c *cli.Context) (*ai.Config, error) {
	token := os.Getenv("OPENAI_API_KEY")
	if token == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	opts := []ai.ConfigOption{ai.WithOpenAIToken(token)}
	if model := c.String("judge-model"); model != "" {
		opts = append(opts, ai.WithJudgeModel(model))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	return ai.NewConfig(opts...), nil
}

// anthropicConfig builds an ai.Config from the environment and command flags.
// The ANTHROPIC_API_KEY environment variable must be set.
func anthropicConfig(c *cli.Context) (*ai.Config, error) {
	token := os.Getenv("ANTHROPIC_API_KEY")
	if token == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}

	opts := []ai.ConfigOption{ai.WithAnthropicToken(token)}
	if model := c.String("rater-model"); model != "" {
		opts = append(opts, ai.WithRaterModel(model))
	}
	if model := c.String("enricher-model"); model != "" {
		opts = append(opts, ai.WithEnricherModel(model))
	}
	return ai.NewConfig(opts...), nil
}

func organizeCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := openAIConfig(c)
	if err != nil {
		return err
	}

	judge, err := openai.NewJudge(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create judge: %w", err)
	}

	messages, err := organize.LoadMessages(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	merger, err := organize.NewMerger(judge,
		organize.WithWindowSize(c.Int("window-size")),
		organize.WithPacing(c.Duration("pacing")),
	)
	if err != nil {
		return fmt.Errorf("failed to create merger: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input: %s\n", c.String("input"))
	fmt.Fprintf(os.Stderr, "Messages: %d\n", len(messages))
	fmt.Fprintln(os.Stderr)

	resources, stats, err := merger.Run(ctx, messages)
	if err != nil {
		return fmt.Errorf("organizing failed: %w", err)
	}

	if err := organize.SaveResources(c.String("output"), resources); err != nil {
		return fmt.Errorf("failed to save resources: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Judged: %d  Created: %d  Merged: %d  Failures: %d\n",
		stats.Judged, stats.Created, stats.Merged, stats.Failures)
	fmt.Fprintf(os.Stderr, "Wrote %d resources to %s\n", len(resources), c.String("output"))
	return nil
}

func enrichCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := anthropicConfig(c)
	if err != nil {
		return err
	}

	rater, err := anthropic.NewRater(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create rater: %w", err)
	}

	enricher, err := anthropic.NewEnricher(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create enricher: %w", err)
	}

	resources, err := organize.LoadResources(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}

	checkpoint := enrich.NewFileCheckpoint(c.String("checkpoint"))
	runner, err := enrich.NewRunner(rater, enricher, checkpoint,
		enrich.WithMaxAttempts(c.Int("max-attempts")),
		enrich.WithRetryDelay(c.Duration("retry-delay")),
		enrich.WithPacing(c.Duration("pacing")),
		enrich.WithSaveEvery(c.Int("save-every")),
	)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input: %s\n", c.String("input"))
	fmt.Fprintf(os.Stderr, "Checkpoint: %s\n", c.String("checkpoint"))
	fmt.Fprintf(os.Stderr, "Resources: %d\n", len(resources))
	fmt.Fprintln(os.Stderr)

	stats, err := runner.Run(ctx, resources)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Succeeded: %d  Failed: %d  Skipped: %d  Discarded: %d\n",
		stats.Succeeded, stats.Failed, stats.Skipped, stats.Discarded)
	return nil
}

func vectorizeCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := openAIConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	webResources, err := enrich.LoadWebResources(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to load web resources: %w", err)
	}
	if len(webResources) == 0 {
		return fmt.Errorf("no web resources found in %s", c.String("input"))
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewRowRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	uploader, err := vectorize.NewUploader(embedder, repo,
		vectorize.WithBatchSize(c.Int("batch-size")),
		vectorize.WithInsertChunk(c.Int("insert-chunk")),
	)
	if err != nil {
		return fmt.Errorf("failed to create uploader: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input: %s\n", c.String("input"))
	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Web resources: %d\n", len(webResources))
	fmt.Fprintln(os.Stderr)

	stats, err := uploader.Run(ctx, webResources)
	if err != nil {
		return fmt.Errorf("vectorizing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Chunks: %d  Uploaded: %d  Skipped: %d  Failed: %d\n",
		stats.Chunks, stats.Uploaded, stats.Skipped, stats.Failed)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("a search query is required")
	}
	queryText := strings.Join(c.Args().Slice(), " ")

	aiConfig, err := openAIConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewRowRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	searcher, err := search.NewSearcher(repo, embedder)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	matches, err := searcher.Search(ctx, search.Query{
		Text:    queryText,
		Tag:     c.String("tag"),
		MaxHits: c.Int("max-hits"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(matches))
	for i, hit := range matches {
		fmt.Printf("%d: '%s' (%s)[%0.3f]\n", i, hit.Row.Title, hit.Row.ResourceID, hit.Score)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := openAIConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewRowRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

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

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
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
