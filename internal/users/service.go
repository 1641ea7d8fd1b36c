package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
)

// Service defines the account and profile operations needed by controllers.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, dto UpdateProfileDTO) (*ProfileDTO, error)
}

type service struct {
	repo *Repository
}

// NewService wires the users service dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return FromModel(user), nil
}

// GetProfile returns the user's profile, creating it on first read so accounts
// registered before profiles existed still resolve.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err == nil {
		return ProfileFromModel(profile), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	created := &models.Profile{
		UserID:   user.ID,
		Username: usernameFromEmail(user.Email),
	}
	if user.Name != "" {
		name := user.Name
		created.DisplayName = &name
	}
	if err := s.repo.CreateProfile(ctx, created); err != nil {
		// Lost a race with a concurrent first read; the row exists now.
		existing, findErr := s.repo.FindProfileByUserID(ctx, userID)
		if findErr == nil {
			return ProfileFromModel(existing), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
	}
	return ProfileFromModel(created), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, dto UpdateProfileDTO) (*ProfileDTO, error) {
	// Ensure the row exists before updating; first write may precede first read.
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if dto.DisplayName != nil {
		updates["display_name"] = *dto.DisplayName
	}
	if dto.AvatarURL != nil {
		updates["avatar_url"] = *dto.AvatarURL
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no profile fields to update")
	}

	if err := s.repo.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload profile")
	}
	return ProfileFromModel(profile), nil
}

func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	if local == "" {
		return "player"
	}
	return local
}
