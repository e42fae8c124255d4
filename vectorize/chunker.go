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

import (
	"strings"

	"github.com/ltejedor/aihacks/core"
)

// contentTypeResource marks rows produced from enriched resources.
const contentTypeResource = "resource"

// BuildRows converts enriched resources into unembedded rows, one chunk per
// resource. The chunk text concatenates title, summary text, and a labeled
// documentation block, in that order. Resources contributing no non-empty
// text are skipped. Row IDs are content hashes, so identical content always
// maps to the same row.
func BuildRows(resources []core.WebResource) []*core.ResourceRow {
	rows := make([]*core.ResourceRow, 0, len(resources))
	for _, res := range resources {
		var parts []string
		if res.Summary.Title != "" {
			parts = append(parts, res.Summary.Title)
		}
		if res.Summary.SummaryText != "" {
			parts = append(parts, res.Summary.SummaryText)
		}
		if doc := strings.TrimSpace(res.Documentation); doc != "" {
			parts = append(parts, "Documentation:\n"+doc)
		}
		if len(parts) == 0 {
			continue
		}

		content := strings.Join(parts, "\n\n")
		rows = append(rows, &core.ResourceRow{
			Id:              core.IDFromContent(content),
			ResourceID:      res.ResourceID,
			Content:         content,
			Title:           res.Summary.Title,
			Tags:            res.Tags,
			Date:            res.Date,
			EvergreenRating: res.EvergreenRating,
			ReactionCount:   res.ReactionCount,
			ContentType:     contentTypeResource,
		})
	}
	return rows
}
