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


// Package anthropic implements the ai.Rater and ai.Enricher contracts over
// the Anthropic API.
//
// Public constructors return interface types to enforce abstraction:
//
//	rater, err := anthropic.NewRater(cfg)       // returns ai.Rater
//	enricher, err := anthropic.NewEnricher(cfg) // returns ai.Enricher
//
// Anthropic models do not offer a structured JSON mode, so responses are
// sanitized (fence stripping, control-character removal) before decoding.
// Any response that fails to decode or validate is returned as an error;
// the batch runner owns the retry policy.
package anthropic
