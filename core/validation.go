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


package core

import "fmt"

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Body must not be empty (empty-body messages are filtered upstream)
//
// NOT validated:
//   - Reactions (optional, collapsed before persistence)
//   - Date (informational, derived from Timestamp by the exporter)
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if msg.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyMessageID)
	}

	if msg.Body == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyBody)
	}

	return nil
}

// ValidateResource validates a Resource according to domain rules.
//
// Validation rules:
//   - ResourceID must not be empty
//   - Messages must not be empty
func ValidateResource(resource *Resource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}

	if resource.ResourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrEmptyResourceID)
	}

	if len(resource.Messages) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrNoMembers)
	}

	return nil
}

// ValidateWebResource validates a WebResource according to domain rules.
//
// Validation rules:
//   - ResourceID must not be empty
//   - EvergreenRating must be on the 0-3 scale
//   - Summary title must not be empty
//   - At most MaxTags tags
func ValidateWebResource(resource *WebResource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidWebResource)
	}

	if resource.ResourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidWebResource, ErrEmptyResourceID)
	}

	if !IsValidRating(resource.EvergreenRating) {
		return fmt.Errorf("%w: %w: %d", ErrInvalidWebResource, ErrRatingOutOfRange, resource.EvergreenRating)
	}

	if resource.Summary.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidWebResource, ErrEmptyTitle)
	}

	if len(resource.Tags) > MaxTags {
		return fmt.Errorf("%w: %w: %d", ErrInvalidWebResource, ErrTooManyTags, len(resource.Tags))
	}

	return nil
}

// IsValidRating checks if a rating is on the discrete 0-3 scale.
func IsValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
