// Copyright 2026 Quaesit Systems
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quaesit/quaesit"
	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/core"
	"github.com/quaesit/quaesit/ingest"
	"github.com/quaesit/quaesit/pipeline"
	"github.com/quaesit/quaesit/validate"
)

func main() {
	app := &cli.App{
		Name:  "quaesit",
		Usage: "Natural-language query pipeline over a profile directory",
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
				Name:   "seed",
				Usage:  "Load profiles from a JSON file, embedding their text",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the JSON file of profiles",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of profiles to embed per call",
						Value: 32,
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Answer a natural-language query against the directory",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Chat model name for classification and validation",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Cache scope token",
					},
					&cli.BoolFlag{
						Name:  "bypass-cache",
						Usage: "Skip the cache read and force a fresh answer",
					},
					&cli.IntFlag{
						Name:  "max-candidates",
						Usage: "Override the adaptive retrieval size (0 = adaptive)",
					},
					&cli.DurationFlag{
						Name:  "deadline",
						Usage: "Bound the validation stage (0 = unbounded)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent validation calls",
						Value: 15,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Candidates dispatched per validation batch",
						Value: 15,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print directory statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// seedProfile is the JSON shape of one profile in the seed file.
type seedProfile struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var seeds []seedProfile
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if len(seeds) == 0 {
		return fmt.Errorf("input file contains no profiles")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	dir, err := quaesit.NewDirectory(c.String("db"), quaesit.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer dir.Close()

	ing, err := dir.NewIngester(ingest.WithBatchSize(c.Int("batch-size")))
	if err != nil {
		return fmt.Errorf("failed to create ingester: %w", err)
	}
	defer ing.Release()

	profiles := make([]*core.Profile, len(seeds))
	for i, s := range seeds {
		profiles[i] = &core.Profile{
			Name:  s.Name,
			URL:   s.URL,
			Title: s.Title,
			Text:  s.Text,
		}
	}

	start := time.Now()
	count, err := ing.Ingest(ctx, profiles...)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Seeded %d profiles in %s\n", count, time.Since(start).Round(time.Millisecond))
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)

	dir, err := quaesit.NewDirectory(c.String("db"), quaesit.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer dir.Close()

	validator, err := validate.NewValidator(dir.Provider().CandidateValidator(),
		validate.WithMaxWorkers(c.Int("workers")),
		validate.WithBatchSize(c.Int("batch-size")),
	)
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}
	defer validator.Release()

	p, err := dir.NewPipeline(
		pipeline.WithValidator(validator),
		pipeline.WithScope(c.String("scope")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Release()

	var opts []pipeline.AnswerOption
	if c.Bool("bypass-cache") {
		opts = append(opts, pipeline.WithBypassCache())
	}
	if k := c.Int("max-candidates"); k > 0 {
		opts = append(opts, pipeline.WithMaxCandidates(k))
	}
	if d := c.Duration("deadline"); d > 0 {
		opts = append(opts, pipeline.WithDeadline(d))
	}

	resp, err := p.Answer(ctx, query, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "label=%s source=%s cached=%t retrieved=%d pruned=%d elapsed=%s\n",
		resp.Label, resp.LabelSource, resp.FromCache,
		resp.Retrieved, resp.Pruned, resp.Elapsed.Round(time.Millisecond))

	if len(resp.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, r := range resp.Results {
		fmt.Printf("%2d. %s (%.3f)\n    %s\n", i+1, r.Name, r.Score, r.URL)
		if r.Rationale != "" {
			fmt.Printf("    %s\n", r.Rationale)
		}
	}

	for _, f := range resp.Failures {
		fmt.Fprintf(os.Stderr, "warning: candidate %d not validated: %v\n", f.ProfileId, f.Err)
	}

	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	dir, err := quaesit.NewDirectory(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer dir.Close()

	count, err := dir.Profiles().Count(ctx)
	if err != nil {
		return err
	}

	universe, err := dir.Profiles().Universe(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("profiles: %d\nembedded: %d\n", count, len(universe))
	return nil
}

func setupLogger(c *cli.Context) error {
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
