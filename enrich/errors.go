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

package enrich

import "errors"

var (
	// ErrRaterRequired is returned when a Runner is created without a rater.
	ErrRaterRequired = errors.New("rater is required")

	// ErrEnricherRequired is returned when a Runner is created without an
	// enricher.
	ErrEnricherRequired = errors.New("enricher is required")

	// ErrCheckpointRequired is returned when a Runner is created without a
	// checkpoint store.
	ErrCheckpointRequired = errors.New("checkpoint store is required")

	// ErrInvalidMaxAttempts indicates maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
