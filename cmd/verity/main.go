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
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/verity"
	"github.com/poiesic/verity/ai"
	"github.com/poiesic/verity/core"
	"github.com/poiesic/verity/match"
	"github.com/poiesic/verity/storage/badger"
	"github.com/poiesic/verity/submission"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "verity",
		Usage: "Verified-answer store with hybrid semantic matching",
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
				Name:      "ask",
				Usage:     "Match a question against the verified-answer store",
				ArgsUsage: "<question>",
				Action:    askCommand,
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
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum combined score for a match",
						Value: 0.7,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "intent-filter",
						Usage: "Restrict candidates to the question's classified intent",
					},
				},
			},
			{
				Name:   "submit",
				Usage:  "Submit a verified question/answer judgment",
				Action: submitCommand,
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
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:     "question",
						Aliases:  []string{"q"},
						Usage:    "The question being answered",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "answer",
						Aliases:  []string{"a"},
						Usage:    "The answer text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "rating",
						Usage: "Judgment: accept, reject, or neutral",
						Value: "accept",
					},
					&cli.StringFlag{
						Name:     "verifier",
						Usage:    "Identity of the verifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Verification type: self, peer, or department",
						Value: "self",
					},
					&cli.StringFlag{
						Name:  "departments",
						Usage: "Comma-separated department tags",
					},
					&cli.DurationFlag{
						Name:  "due-in",
						Usage: "Re-verification due after this duration (e.g. 2160h)",
					},
				},
			},
			{
				Name:      "stats",
				Usage:     "Show aggregates for a stored answer",
				ArgsUsage: "<answer-id>",
				Action:    statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:      "archive",
				Usage:     "Archive answers so they drop out of matching",
				ArgsUsage: "<answer-id>...",
				Action:    archiveCommand,
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

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	matchConfig := match.DefaultConfig()
	matchConfig.Threshold = c.Float64("threshold")
	matchConfig.Limit = c.Int("limit")
	matchConfig.FilterByIntent = c.Bool("intent-filter")

	db, err := verity.NewDatabase(c.String("db"),
		verity.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)),
		verity.WithMatchConfig(matchConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	matcher, err := db.NewMatcher()
	if err != nil {
		return err
	}

	results, err := matcher.Match(ctx, question)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d matches\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: [%.3f] %s\n", i+1, hit.Score, hit.Answer.Answer)
		fmt.Printf("   question: %s (id %d)\n", hit.Answer.Question, hit.Answer.Id)
		fmt.Printf("   vector %.3f / lexical %.3f / freshness %.3f, +%d/-%d\n",
			hit.Breakdown.Vector, hit.Breakdown.Lexical, hit.Breakdown.Freshness,
			hit.Answer.AcceptedCount, hit.Answer.RejectedCount)

		// Served answers count as viewed
		if err := db.AnswerRepository().IncrementViews(ctx, hit.Answer.Id); err != nil {
			slog.Warn("error incrementing views", "id", hit.Answer.Id, "err", err)
		}
	}
	return nil
}

func submitCommand(c *cli.Context) error {
	ctx := context.Background()

	rating, err := parseRating(c.String("rating"))
	if err != nil {
		return err
	}
	verType, err := parseVerificationType(c.String("type"))
	if err != nil {
		return err
	}

	var departments []string
	if tags := strings.TrimSpace(c.String("departments")); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			departments = append(departments, strings.TrimSpace(tag))
		}
	}

	var dueDate time.Time
	if dueIn := c.Duration("due-in"); dueIn > 0 {
		dueDate = time.Now().UTC().Add(dueIn)
	}

	db, err := verity.NewDatabase(c.String("db"),
		verity.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)),
	)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewSubmissionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	answer, err := pipeline.Submit(ctx, &submission.Submission{
		Question:    c.String("question"),
		Answer:      c.String("answer"),
		Rating:      rating,
		Verifier:    c.String("verifier"),
		Type:        verType,
		Departments: departments,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded verification for answer %d (intent %s): +%d/-%d over %d records\n",
		answer.Id, answer.Intent, answer.AcceptedCount, answer.RejectedCount, len(answer.Verifications))
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewAnswerRepository(backend, 0)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	answer, err := repo.GetAnswer(ctx, id)
	if err != nil {
		return err
	}
	aggs, err := repo.GetAggregates(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Answer %d (intent %s, archived %v)\n", answer.Id, answer.Intent, answer.Archived)
	fmt.Printf("  Q: %s\n", answer.Question)
	fmt.Printf("  A: %s\n", answer.Answer)
	fmt.Printf("  accepted %d, rejected %d, views %d, %d verification records\n",
		aggs.AcceptedCount, aggs.RejectedCount, aggs.Views, len(answer.Verifications))
	for _, record := range answer.Verifications {
		fmt.Printf("  %s %s by %s (%s)\n",
			record.Timestamp.Format(time.RFC3339), ratingLabel(record.Rating),
			record.Verifier, typeLabel(record.Type))
	}
	return nil
}

func archiveCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one answer id is required")
	}
	ids := make([]core.ID, 0, c.Args().Len())
	for _, arg := range c.Args().Slice() {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewAnswerRepository(backend, 0)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	if err := repo.ArchiveAnswers(ctx, ids...); err != nil {
		return err
	}
	fmt.Printf("Archived %d answers\n", len(ids))
	return nil
}

func parseID(arg string) (core.ID, error) {
	if arg == "" {
		return 0, fmt.Errorf("answer id is required")
	}
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid answer id %q: %w", arg, err)
	}
	return core.ID(id), nil
}

func parseRating(s string) (core.Rating, error) {
	switch strings.ToLower(s) {
	case "accept", "accepted":
		return core.RatingAccepted, nil
	case "reject", "rejected":
		return core.RatingRejected, nil
	case "neutral":
		return core.RatingNeutral, nil
	}
	return 0, fmt.Errorf("invalid rating %q: use accept, reject, or neutral", s)
}

func parseVerificationType(s string) (core.VerificationType, error) {
	switch strings.ToLower(s) {
	case "self":
		return core.VerificationTypeSelf, nil
	case "peer":
		return core.VerificationTypePeer, nil
	case "department":
		return core.VerificationTypeDepartment, nil
	}
	return 0, fmt.Errorf("invalid verification type %q: use self, peer, or department", s)
}

func ratingLabel(rating core.Rating) string {
	switch rating {
	case core.RatingAccepted:
		return "accepted"
	case core.RatingRejected:
		return "rejected"
	default:
		return "neutral"
	}
}

func typeLabel(t core.VerificationType) string {
	switch t {
	case core.VerificationTypeSelf:
		return "self"
	case core.VerificationTypePeer:
		return "peer"
	case core.VerificationTypeDepartment:
		return "department"
	default:
		return "unknown"
	}
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
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}
