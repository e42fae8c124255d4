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


package aihacks

import (
	"io"
	"log/slog"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/reembed"
	"github.com/ltejedor/aihacks/search"
	"github.com/ltejedor/aihacks/storage"
	"github.com/ltejedor/aihacks/storage/badger"
	"github.com/ltejedor/aihacks/vectorize"
)

// Database bundles the persistent row store behind the vectorize, search,
// and reembed stages. The file-based stages (organize, enrich) do not touch
// the database and are constructed directly from their packages.
type Database struct {
	backend *badger.Backend
	rowRepo storage.RowRepository
	logger  *slog.Logger
}

func NewDatabase(filePath string) (*Database, error) {
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create row repository
	rowRepo, err := badger.NewRowRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend: backend,
		rowRepo: rowRepo,
		logger:  slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close repository first
	if err := db.rowRepo.Close(); err != nil {
		db.logger.Error("error closing row repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) RowRepository() storage.RowRepository {
	return db.rowRepo
}

func (db *Database) NewUploader(embedder ai.Embedder, opts ...vectorize.UploaderOption) (*vectorize.Uploader, error) {
	return vectorize.NewUploader(embedder, db.rowRepo, opts...)
}

func (db *Database) NewSearcher(embedder ai.Embedder, opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.rowRepo, embedder, opts...)
}

func (db *Database) NewReembedder(embedder ai.Embedder, config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.rowRepo, embedder, config, progress)
}
