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


// Package openai implements the ai.Judge and ai.Embedder contracts over
// OpenAI-compatible APIs.
//
// Public constructors return interface types to enforce abstraction:
//
//	judge, err := openai.NewJudge(cfg)       // returns ai.Judge
//	embedder, err := openai.NewEmbedder(cfg) // returns ai.Embedder
//
// The judge asks a chat model, in JSON mode, whether a focal message starts
// an evergreen resource and which neighboring messages belong to the same
// discussion. Model output is sanitized and repaired before decoding; output
// that still fails to decode is returned as an error for the caller to
// absorb (the cluster engine treats it as "not a resource").
package openai
