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

package reembed

import (
	"context"

	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
)

const (
	// DefaultBatchSize is the default number of rows to fetch in each batch
	DefaultBatchSize = 100
)

// RowIterator iterates over all resource rows in batches.
type RowIterator struct {
	repo      storage.RowRepository
	batchSize int
}

// NewRowIterator creates a new row iterator.
// batchSize: number of rows to process in each batch (must be > 0)
func NewRowIterator(repo storage.RowRepository, batchSize int) *RowIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RowIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all resource rows, calling fn for each batch.
// Iteration stops on first error from fn or when all rows are processed.
// Context cancellation is checked between batches.
func (it *RowIterator) ForEach(ctx context.Context, fn func([]*core.ResourceRow) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// A wide lexicographic range covers every ISO date.
	rows, err := it.repo.GetRowsByDateRange(ctx, "", "~")
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	for i := 0; i < len(rows); i += it.batchSize {
		end := i + it.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		if err := fn(rows[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
