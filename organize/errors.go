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

package organize

import "errors"

var (
	// ErrJudgeRequired is returned when a Merger is created without a judge.
	ErrJudgeRequired = errors.New("judge is required")

	// ErrNoMessages is returned when the input message stream is empty after
	// filtering.
	ErrNoMessages = errors.New("no messages to process")
)
