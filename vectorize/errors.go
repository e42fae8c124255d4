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

package vectorize

import "errors"

var (
	// ErrEmbedderRequired is returned when an Uploader is created without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrRepositoryRequired is returned when an Uploader is created without
	// a row repository.
	ErrRepositoryRequired = errors.New("row repository is required")

	// ErrEmbeddingCountMismatch indicates the embedding call returned a
	// different number of vectors than texts submitted. The batch cannot be
	// trusted and is dropped.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match text count")
)
