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


package verity

import (
	"log/slog"

	"github.com/poiesic/verity/ai"
	"github.com/poiesic/verity/ai/openai"
	"github.com/poiesic/verity/match"
	"github.com/poiesic/verity/storage"
	"github.com/poiesic/verity/storage/badger"
	"github.com/poiesic/verity/submission"
)

type Database struct {
	backend     *badger.Backend
	answerRepo  storage.AnswerRepository
	embedder    ai.Embedder
	matchConfig *match.Config
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig    *ai.Config
	matchConfig *match.Config
}

// WithAIConfig overrides the embedding service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithMatchConfig overrides the matching parameters.
func WithMatchConfig(config *match.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.matchConfig = config
		}
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig:    ai.DefaultConfig(), // Default if not provided
		matchConfig: match.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	// Keep the store and the matcher agreed on vector length. Work on a
	// copy so the caller's config is never mutated.
	matchConfig := *options.matchConfig
	matchConfig.Dimensions = options.aiConfig.EmbeddingDimensions

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create answer repository
	answerRepo, err := badger.NewAnswerRepository(backend, options.aiConfig.EmbeddingDimensions)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create embedder with configured settings
	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		answerRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:     backend,
		answerRepo:  answerRepo,
		embedder:    embedder,
		matchConfig: &matchConfig,
		logger:      slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close repository first
	if err := db.answerRepo.Close(); err != nil {
		db.logger.Error("error closing answer repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) AnswerRepository() storage.AnswerRepository {
	return db.answerRepo
}

func (db *Database) Embedder() ai.Embedder {
	return db.embedder
}

func (db *Database) NewMatcher(opts ...match.Option) (*match.Matcher, error) {
	opts = append([]match.Option{match.WithConfig(db.matchConfig)}, opts...)
	return match.NewMatcher(db.answerRepo, db.embedder, opts...)
}

func (db *Database) NewSubmissionPipeline(opts ...submission.Option) (*submission.Pipeline, error) {
	opts = append([]submission.Option{submission.WithDimensions(db.matchConfig.Dimensions)}, opts...)
	return submission.NewPipeline(db.answerRepo, db.embedder, opts...)
}
