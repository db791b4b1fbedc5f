package membership

import (
	"context"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/apperr"
	"baby-tracker-go/internal/domain/calendar"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RoleOf(ctx context.Context, userID, babyID string) (Role, bool, error) {
	return RoleOf(ctx, s.repo, userID, babyID)
}

func (s *Service) Authorize(ctx context.Context, userID, babyID string) (Access, error) {
	return Authorize(ctx, s.repo, userID, babyID)
}

func (s *Service) RequireAnyRole(ctx context.Context, userID, babyID string) (Role, error) {
	access, err := s.Authorize(ctx, userID, babyID)
	if err != nil {
		return "", err
	}
	return access.Require()
}

func (s *Service) RequireOwner(ctx context.Context, userID, babyID string) error {
	access, err := s.Authorize(ctx, userID, babyID)
	if err != nil {
		return err
	}
	return access.RequireOwner()
}

func (s *Service) Grant(ctx context.Context, userID, babyID string, role Role) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		return Grant(ctx, tx, userID, babyID, role)
	})
}

// Leave removes the caller's own membership. Owners have to delete the baby.
func (s *Service) Leave(ctx context.Context, userID, babyID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		access, err := Authorize(ctx, tx, userID, babyID)
		if err != nil {
			return err
		}
		role, err := access.Require()
		if err != nil {
			return err
		}
		if role == RoleOwner {
			return ErrOwnerCannotLeave
		}

		deleted, err := tx.DeleteMembership(ctx, babyID, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrBabyNotFound
		}
		return nil
	})
}

func (in CreateBabyInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.BirthDate, validation.Required, validation.Date(calendar.Layout)),
		validation.Field(&in.Gender, validation.In(GenderFemale, GenderMale)),
	)
}

func (s *Service) CreateBaby(ctx context.Context, userID string, input CreateBabyInput) (*Baby, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.BirthDate = strings.TrimSpace(input.BirthDate)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
	if err := input.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}

	birthDate, err := calendar.Parse(input.BirthDate)
	if err != nil {
		return nil, apperr.Invalid(err)
	}

	baby := Baby{
		ID:        uuid.NewString(),
		Name:      input.Name,
		BirthDate: birthDate,
		Gender:    optionalString(input.Gender),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateBaby(ctx, &baby); err != nil {
			return err
		}
		return tx.AddMembership(ctx, &Membership{
			BabyID: baby.ID,
			UserID: userID,
			Role:   RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	return &baby, nil
}

// ListBabies returns every baby the caller belongs to, newest first.
func (s *Service) ListBabies(ctx context.Context, userID string) ([]BabySummary, error) {
	return s.repo.ListBabiesForUser(ctx, userID)
}

func (s *Service) GetBaby(ctx context.Context, userID, babyID string) (*BabyDetail, error) {
	role, err := s.RequireAnyRole(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}

	baby, err := s.repo.GetBaby(ctx, babyID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, babyID)
	if err != nil {
		return nil, err
	}

	return &BabyDetail{Baby: *baby, Role: role, Members: members}, nil
}

func (in UpdateBabyInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&in.BirthDate, validation.NilOrNotEmpty, validation.Date(calendar.Layout)),
		validation.Field(&in.Gender, validation.In(GenderFemale, GenderMale)),
	)
}

// UpdateBaby applies a partial update. Any member may edit the profile.
func (s *Service) UpdateBaby(ctx context.Context, userID, babyID string, input UpdateBabyInput) (*Baby, error) {
	input.Name = trimmed(input.Name)
	input.BirthDate = trimmed(input.BirthDate)
	if input.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*input.Gender))
		input.Gender = &gender
	}
	if err := input.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}

	var result Baby
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		access, err := Authorize(ctx, tx, userID, babyID)
		if err != nil {
			return err
		}
		if _, err := access.Require(); err != nil {
			return err
		}

		baby, err := tx.GetBaby(ctx, babyID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			baby.Name = *input.Name
		}
		if input.BirthDate != nil {
			birthDate, err := calendar.Parse(*input.BirthDate)
			if err != nil {
				return apperr.Invalid(err)
			}
			baby.BirthDate = birthDate
		}
		if input.Gender != nil {
			baby.Gender = optionalString(*input.Gender)
		}
		baby.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateBaby(ctx, baby); err != nil {
			return err
		}
		result = *baby
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteBaby removes the baby and everything hanging off it. Owner only.
func (s *Service) DeleteBaby(ctx context.Context, userID, babyID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		access, err := Authorize(ctx, tx, userID, babyID)
		if err != nil {
			return err
		}
		if err := access.RequireOwner(); err != nil {
			return err
		}
		return tx.DeleteBabyCascade(ctx, babyID)
	})
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
