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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidResource indicates a Resource failed validation.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrInvalidWebResource indicates a WebResource failed validation.
	ErrInvalidWebResource = errors.New("invalid web resource")

	// ErrEmptyMessageID indicates the message ID field is empty.
	ErrEmptyMessageID = errors.New("message id cannot be empty")

	// ErrEmptyBody indicates the message body is empty.
	ErrEmptyBody = errors.New("message body cannot be empty")

	// ErrEmptyResourceID indicates the resource ID field is empty.
	ErrEmptyResourceID = errors.New("resource id cannot be empty")

	// ErrNoMembers indicates a resource has no member messages.
	ErrNoMembers = errors.New("resource must have at least one message")

	// ErrRatingOutOfRange indicates a rating outside the 0-3 scale.
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 3")

	// ErrEmptyTitle indicates a web resource summary without a title.
	ErrEmptyTitle = errors.New("summary title cannot be empty")

	// ErrTooManyTags indicates a web resource with more than MaxTags tags.
	ErrTooManyTags = errors.New("too many tags")
)
