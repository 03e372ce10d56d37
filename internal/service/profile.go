package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/apperr"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// ProfileService is the account glue around the access core: creation with a
// generated default username, owner-only visibility changes, and the
// facade-guarded public read path.
type ProfileService struct {
	profiles repository.ProfileRepository
	access   *AccessService
	cfg      config.UsernameConfig
}

func NewProfileService(profiles repository.ProfileRepository, access *AccessService, cfg config.UsernameConfig) *ProfileService {
	return &ProfileService{profiles: profiles, access: access, cfg: cfg}
}

// Create makes the profile row for a freshly provisioned account id. The
// generated username ("reader" + uuid hex) always passes the format policy;
// the retry loop only matters on a uuid prefix collision.
func (s *ProfileService) Create(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	visibility := s.cfg.DefaultVisibility
	if visibility != model.VisibilityPublic {
		visibility = model.VisibilityFollowersOnly
	}
	for attempt := 0; attempt < 3; attempt++ {
		p := &model.Profile{
			ID:         userID,
			Username:   defaultUsername(),
			Visibility: visibility,
		}
		err := s.profiles.Create(ctx, p)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// either the account already has a profile or the generated
			// name collided; disambiguate and retry the latter
			existing, gerr := s.profiles.GetByID(ctx, userID)
			if gerr != nil {
				return nil, gerr
			}
			if existing != nil {
				return existing, nil
			}
			continue
		}
		return nil, err
	}
	return nil, errors.New("could not generate a default username")
}

func defaultUsername() string {
	return "reader" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// SetVisibility is owner-only by construction: it only ever writes the
// acting user's row.
func (s *ProfileService) SetVisibility(ctx context.Context, actingUserID, visibility string) error {
	if actingUserID == "" {
		return apperr.ErrNotAuthenticated
	}
	if visibility != model.VisibilityPublic && visibility != model.VisibilityFollowersOnly {
		return apperr.ErrInvalidVisibility
	}
	me, err := s.profiles.GetByID(ctx, actingUserID)
	if err != nil {
		return err
	}
	if me == nil {
		return apperr.ErrProfileNotFound
	}
	return s.profiles.UpdateVisibility(ctx, actingUserID, visibility)
}

// ProfileView is the public shape of a viewable profile.
type ProfileView struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Visibility string `json:"visibility"`
}

// Get resolves a username to a viewable profile. Hidden and missing are the
// same error on purpose.
func (s *ProfileService) Get(ctx context.Context, viewerID, username string) (*ProfileView, error) {
	p, err := s.profiles.GetByUsername(ctx, Normalize(username))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrProfileNotFound
	}
	ok, err := s.access.CanViewProfile(ctx, viewerID, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrProfileNotFound
	}
	return &ProfileView{ID: p.ID, Username: p.Username, Visibility: p.Visibility}, nil
}
