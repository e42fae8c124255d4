package core

import (
	"errors"
	"testing"
)

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{
			name:    "valid message",
			msg:     &Message{ID: "m1", Timestamp: 100, Author: "+15551234", Body: "hello"},
			wantErr: nil,
		},
		{
			name:    "nil message",
			msg:     nil,
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "empty id",
			msg:     &Message{Body: "hello"},
			wantErr: ErrEmptyMessageID,
		},
		{
			name:    "empty body",
			msg:     &Message{ID: "m1"},
			wantErr: ErrEmptyBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(tt.msg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateResource(t *testing.T) {
	tests := []struct {
		name     string
		resource *Resource
		wantErr  error
	}{
		{
			name: "valid resource",
			resource: &Resource{
				ResourceID:          "r1",
				ResourceDescription: "desc",
				Messages:            []Message{{ID: "m1", Body: "hello"}},
			},
			wantErr: nil,
		},
		{
			name:     "nil resource",
			resource: nil,
			wantErr:  ErrInvalidResource,
		},
		{
			name:     "empty resource id",
			resource: &Resource{Messages: []Message{{ID: "m1", Body: "hi"}}},
			wantErr:  ErrEmptyResourceID,
		},
		{
			name:     "no members",
			resource: &Resource{ResourceID: "r1"},
			wantErr:  ErrNoMembers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResource(tt.resource)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateWebResource(t *testing.T) {
	valid := func() *WebResource {
		return &WebResource{
			ResourceID:      "r1",
			EvergreenRating: 2,
			Summary:         Summary{Title: "Agent Frameworks Compared", SummaryText: "Problem: ..."},
			Tags:            []string{"agents", "llms"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		if err := ValidateWebResource(valid()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		wr := valid()
		wr.EvergreenRating = 4
		if err := ValidateWebResource(wr); !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("expected ErrRatingOutOfRange, got %v", err)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		wr := valid()
		wr.Summary.Title = ""
		if err := ValidateWebResource(wr); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("expected ErrEmptyTitle, got %v", err)
		}
	})

	t.Run("too many tags", func(t *testing.T) {
		wr := valid()
		wr.Tags = []string{"a", "b", "c", "d", "e", "f"}
		if err := ValidateWebResource(wr); !errors.Is(err, ErrTooManyTags) {
			t.Errorf("expected ErrTooManyTags, got %v", err)
		}
	})
}

func TestIsValidRating(t *testing.T) {
	for rating := 0; rating <= 3; rating++ {
		if !IsValidRating(rating) {
			t.Errorf("rating %d should be valid", rating)
		}
	}
	for _, rating := range []int{-1, 4, 10} {
		if IsValidRating(rating) {
			t.Errorf("rating %d should be invalid", rating)
		}
	}
}
