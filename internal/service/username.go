package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/apperr"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/pkg/logger"
)

// UsernameService owns the username lifecycle: format policy, availability,
// the atomic rename, and permanent-redirect bookkeeping. The reserved set
// and length bounds come from config and are immutable after construction.
type UsernameService struct {
	db       *gorm.DB
	profiles repository.ProfileRepository
	aliases  repository.AliasRepository
	minLen   int
	maxLen   int
	reserved map[string]struct{}
}

func NewUsernameService(db *gorm.DB, profiles repository.ProfileRepository, aliases repository.AliasRepository, cfg config.UsernameConfig) *UsernameService {
	reserved := make(map[string]struct{}, len(cfg.Reserved))
	for _, w := range cfg.Reserved {
		reserved[Normalize(w)] = struct{}{}
	}
	minLen, maxLen := cfg.MinLen, cfg.MaxLen
	if minLen <= 0 {
		minLen = 3
	}
	if maxLen <= 0 {
		maxLen = 24
	}
	return &UsernameService{
		db:       db,
		profiles: profiles,
		aliases:  aliases,
		minLen:   minLen,
		maxLen:   maxLen,
		reserved: reserved,
	}
}

// Normalize lowercases and trims surrounding whitespace. Every comparison
// in this package runs on the normalized form.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Validate checks the normalized form against the format policy.
func (s *UsernameService) Validate(normalized string) error {
	if len(normalized) < s.minLen || len(normalized) > s.maxLen {
		return apperr.ErrInvalidFormat
	}
	if normalized[0] == '_' || normalized[len(normalized)-1] == '_' {
		return apperr.ErrInvalidFormat
	}
	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return apperr.ErrInvalidFormat
	}
	return nil
}

// IsReserved reports membership in the configured route-like token set.
func (s *UsernameService) IsReserved(normalized string) bool {
	_, ok := s.reserved[normalized]
	return ok
}

// CheckAvailability is the advisory, unauthenticated, read-only check used
// for live typing. A name once held by anyone stays unavailable forever: it
// either sits on a profile or lives on as an alias old_username.
func (s *UsernameService) CheckAvailability(ctx context.Context, raw string) (bool, error) {
	normalized := Normalize(raw)
	if err := s.Validate(normalized); err != nil {
		return false, nil
	}
	if s.IsReserved(normalized) {
		return false, nil
	}
	held, err := s.profiles.ExistsByUsername(ctx, normalized)
	if err != nil {
		return false, err
	}
	if held {
		return false, nil
	}
	aliased, err := s.aliases.Exists(ctx, normalized)
	if err != nil {
		return false, err
	}
	return !aliased, nil
}

// RenameResult reports the outcome of a rename.
type RenameResult struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Changed bool   `json:"changed"`
}

// Rename atomically moves the acting user to a new username and records the
// previous one as a permanent redirect. The availability check runs inside
// the same transaction as the writes; of two concurrent renames to the same
// name exactly one commits, the other gets Taken. The unique index on
// profiles.username is the last line of defense: a duplicate-key error on
// the update is the lost race, not an internal failure.
func (s *UsernameService) Rename(ctx context.Context, actingUserID, newUsernameRaw string) (*RenameResult, error) {
	if actingUserID == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	normalized := Normalize(newUsernameRaw)
	if err := s.Validate(normalized); err != nil {
		return nil, err
	}
	if s.IsReserved(normalized) {
		return nil, apperr.ErrReserved
	}

	var result *RenameResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles := repository.NewProfileRepository(tx)
		aliases := repository.NewAliasRepository(tx)

		me, err := profiles.GetByID(ctx, actingUserID)
		if err != nil {
			return err
		}
		if me == nil {
			return apperr.ErrProfileNotFound
		}
		if me.Username == normalized {
			result = &RenameResult{Old: me.Username, New: normalized, Changed: false}
			return nil
		}

		// in-tx availability re-check; the advisory CheckAvailability the
		// client ran earlier is not trusted here
		held, err := profiles.ExistsByUsername(ctx, normalized)
		if err != nil {
			return err
		}
		if held {
			return apperr.ErrTaken
		}
		// someone else's history blocks the name forever; the acting user's
		// own former names may be re-claimed
		blocked, err := aliases.ExistsForOtherUser(ctx, normalized, actingUserID)
		if err != nil {
			return err
		}
		if blocked {
			return apperr.ErrTaken
		}

		if err := profiles.UpdateUsername(ctx, actingUserID, normalized); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.ErrTaken
			}
			return err
		}
		// keep every historical redirect pointing at the newest name
		if err := aliases.RepointAll(ctx, actingUserID, normalized); err != nil {
			return err
		}
		if err := aliases.Upsert(ctx, &model.UsernameAlias{
			OldUsername:     me.Username,
			CurrentUsername: normalized,
			UserID:          actingUserID,
		}); err != nil {
			return err
		}

		result = &RenameResult{Old: me.Username, New: normalized, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Changed {
		logger.Info("username renamed",
			zap.String("user", actingUserID),
			zap.String("old", result.Old),
			zap.String("new", result.New))
	}
	return result, nil
}

// RedirectResult is the answer to a vanity-URL lookup. Canonical means the
// requested name is current and no redirect is needed.
type RedirectResult struct {
	Canonical bool   `json:"canonical"`
	Username  string `json:"username"`
}

// ResolveRedirect keeps old inbound links alive. Canonical profiles win over
// aliases, so a self-referential alias left behind by re-claiming a former
// name is never followed.
func (s *UsernameService) ResolveRedirect(ctx context.Context, requestedUsername string) (*RedirectResult, error) {
	normalized := Normalize(requestedUsername)
	held, err := s.profiles.ExistsByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if held {
		return &RedirectResult{Canonical: true, Username: normalized}, nil
	}
	alias, err := s.aliases.GetByOldUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if alias != nil {
		return &RedirectResult{Canonical: false, Username: alias.CurrentUsername}, nil
	}
	return nil, apperr.ErrUsernameNotFound
}
