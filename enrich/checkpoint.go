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

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ltejedor/aihacks/core"
)

// CheckpointStore persists the accumulated enrichment results between runs.
// Load returning an empty list means a fresh start.
type CheckpointStore interface {
	Load() ([]core.WebResource, error)
	Save(resources []core.WebResource) error
}

// FileCheckpoint stores the result list as a JSON file. Each Save overwrites
// the previous snapshot. The file doubles as the stage output consumed by the
// upload pipeline.
type FileCheckpoint struct {
	path   string
	logger *slog.Logger
}

// NewFileCheckpoint creates a checkpoint backed by the given file path.
func NewFileCheckpoint(path string) *FileCheckpoint {
	return &FileCheckpoint{
		path:   path,
		logger: slog.Default().With("component", "enrich.checkpoint"),
	}
}

// Load reads the checkpoint file. A missing file means a fresh start. A
// corrupt file is treated the same: logged and discarded, never fatal.
func (c *FileCheckpoint) Load() ([]core.WebResource, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}

	var resources []core.WebResource
	if err := json.Unmarshal(data, &resources); err != nil {
		c.logger.Warn("checkpoint file is corrupted, starting fresh", "path", c.path, "err", err)
		return nil, nil
	}

	return resources, nil
}

// LoadWebResources reads an enrichment result file as a stage input.
// Unlike FileCheckpoint.Load, a missing or unparseable file is an error:
// corruption tolerance is a resume behavior, and a later stage fed a
// damaged file must say so instead of reporting an empty batch.
func LoadWebResources(path string) ([]core.WebResource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading web resources: %w", err)
	}

	var resources []core.WebResource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("parsing web resources %s: %w", path, err)
	}

	return resources, nil
}

// Save writes the full result list, replacing the previous snapshot. The
// write goes through a temporary file and a rename so a crash mid-write
// cannot corrupt the previous snapshot.
func (c *FileCheckpoint) Save(resources []core.WebResource) error {
	data, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating checkpoint temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing checkpoint: %w", err)
	}

	return nil
}
