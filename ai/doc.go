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


// Package ai provides abstractions for the external AI collaborators used
// throughout the pipeline.
//
// Four single-purpose interfaces model the request/response contracts the
// pipeline depends on, independent of which model or service backs them:
//
//   - Judge: classifies a message and names its cluster companions
//   - Rater: scores a finalized resource on the 0-3 evergreen scale
//   - Enricher: derives summary, documentation, and tags
//   - Embedder: generates vector embeddings from text
//
// # Implementation Packages
//
//   - ai/openai: Judge and Embedder over OpenAI-compatible APIs
//   - ai/anthropic: Rater and Enricher over the Anthropic API
//   - ai/mock: deterministic test doubles
//
// Clients are constructed once at process start from a validated Config and
// passed explicitly into the components that use them; nothing in this
// package or its implementations relies on ambient global state.
//
// All implementations must tolerate malformed model output: a response that
// cannot be decoded is returned as an error, never a panic, and callers
// decide whether to retry, skip, or abort.
package ai
