package weights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/apperr"
	"baby-tracker-go/internal/domain/calendar"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

var weightRange = fmt.Sprintf("must be between %d and %d", MinWeightGrams, MaxWeightGrams)

type Service struct {
	repo Repository
	gate Gate
}

func NewService(repo Repository, gate Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

func (s *Service) ListEntries(ctx context.Context, userID, babyID string) ([]EntryView, error) {
	if _, err := s.gate.RequireAnyRole(ctx, userID, babyID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListEntries(ctx, babyID)
	if err != nil {
		return nil, err
	}
	return Timeline(records), nil
}

func (in CreateEntryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.WeightGrams,
			validation.Required,
			validation.Min(MinWeightGrams).Error(weightRange),
			validation.Max(MaxWeightGrams).Error(weightRange),
		),
		validation.Field(&in.MeasuredAt, validation.Required, validation.Date(calendar.Layout)),
		validation.Field(&in.Notes, validation.Length(0, 1000)),
	)
}

func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	input.MeasuredAt = strings.TrimSpace(input.MeasuredAt)
	input.Notes = strings.TrimSpace(input.Notes)
	if err := input.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}

	if _, err := s.gate.RequireAnyRole(ctx, input.UserID, input.BabyID); err != nil {
		return nil, err
	}

	measuredAt, err := calendar.Parse(input.MeasuredAt)
	if err != nil {
		return nil, apperr.Invalid(err)
	}

	entry := Entry{
		ID:          uuid.NewString(),
		BabyID:      input.BabyID,
		WeightGrams: input.WeightGrams,
		MeasuredAt:  measuredAt,
		CreatedBy:   input.UserID,
	}
	if input.Notes != "" {
		entry.Notes = &input.Notes
	}

	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (in UpdateEntryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.WeightGrams,
			validation.NilOrNotEmpty.Error(weightRange),
			validation.Min(MinWeightGrams).Error(weightRange),
			validation.Max(MaxWeightGrams).Error(weightRange),
		),
		validation.Field(&in.MeasuredAt, validation.NilOrNotEmpty, validation.Date(calendar.Layout)),
		validation.Field(&in.Notes, validation.Length(0, 1000)),
	)
}

// UpdateEntry changes only the provided fields. An empty note clears it.
func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*Entry, error) {
	if input.MeasuredAt != nil {
		trimmed := strings.TrimSpace(*input.MeasuredAt)
		input.MeasuredAt = &trimmed
	}
	if err := input.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}

	if _, err := s.gate.RequireAnyRole(ctx, input.UserID, input.BabyID); err != nil {
		return nil, err
	}

	var result Entry
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		entry, err := tx.GetEntry(ctx, input.BabyID, input.EntryID)
		if err != nil {
			return err
		}

		if input.WeightGrams != nil {
			entry.WeightGrams = *input.WeightGrams
		}
		if input.MeasuredAt != nil {
			measuredAt, err := calendar.Parse(*input.MeasuredAt)
			if err != nil {
				return apperr.Invalid(err)
			}
			entry.MeasuredAt = measuredAt
		}
		if input.Notes != nil {
			notes := strings.TrimSpace(*input.Notes)
			if notes == "" {
				entry.Notes = nil
			} else {
				entry.Notes = &notes
			}
		}
		entry.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateEntry(ctx, entry); err != nil {
			return err
		}
		result = *entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, babyID, entryID string) error {
	if _, err := s.gate.RequireAnyRole(ctx, userID, babyID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteEntry(ctx, babyID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}
