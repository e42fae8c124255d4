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

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ltejedor/aihacks/core"
)

// export mirrors the top-level shape of the chat exporter output.
type export struct {
	Messages []core.Message `json:"messages"`
}

// LoadMessages reads an exported chat file and returns its messages ready for
// processing: empty-body messages are dropped and the remainder is sorted by
// timestamp ascending (ties broken by id for a deterministic order).
func LoadMessages(path string) ([]core.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading message export: %w", err)
	}

	var e export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parsing message export: %w", err)
	}

	messages := make([]core.Message, 0, len(e.Messages))
	for _, m := range e.Messages {
		if m.Body == "" {
			continue
		}
		messages = append(messages, m)
	}

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp != messages[j].Timestamp {
			return messages[i].Timestamp < messages[j].Timestamp
		}
		return messages[i].ID < messages[j].ID
	})

	return messages, nil
}

// SaveResources writes the organized resource list as the intermediate
// artifact consumed by the enrichment stage.
func SaveResources(path string, resources []*core.Resource) error {
	data, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding resources: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing resources: %w", err)
	}
	return nil
}

// LoadResources reads a resource list previously written by SaveResources.
func LoadResources(path string) ([]*core.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resources: %w", err)
	}
	var resources []*core.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("parsing resources: %w", err)
	}
	return resources, nil
}
