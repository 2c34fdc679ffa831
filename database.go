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


package filescout

import (
	"log/slog"

	"github.com/poiesic/filescout/results"
	"github.com/poiesic/filescout/storage"
	"github.com/poiesic/filescout/storage/badger"
)

// Database bundles a storage backend with the run repository built on it.
type Database struct {
	backend *badger.Backend
	runRepo storage.RunRepository
	logger  *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory opens the backend in memory instead of on disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create run repository
	runRepo, err := badger.NewRunRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend: backend,
		runRepo: runRepo,
		logger:  slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.runRepo.Close(); err != nil {
		db.logger.Error("error closing run repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) RunRepository() storage.RunRepository {
	return db.runRepo
}

// NewRecorder creates a results.Recorder that persists runs into this database.
func (db *Database) NewRecorder(roots []string, query string, opts ...results.RecorderOption) (*results.Recorder, error) {
	return results.NewRecorder(db.runRepo, roots, query, opts...)
}
