package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// AccessService is the sole enforcement boundary for visibility and username
// state. Nothing outside this package touches follow-edge or alias storage;
// read paths ask here before returning a record, and a denial must look
// exactly like a missing record to the caller.
type AccessService struct {
	resolver *VisibilityResolver
	graph    *FollowGraphService
	username *UsernameService
}

func NewAccessService(db *gorm.DB, profiles repository.ProfileRepository, follows repository.FollowRepository, catalog repository.CatalogRepository, aliases repository.AliasRepository, usernameCfg config.UsernameConfig) *AccessService {
	return &AccessService{
		resolver: NewVisibilityResolver(profiles, follows, catalog),
		graph:    NewFollowGraphService(profiles, follows),
		username: NewUsernameService(db, profiles, aliases, usernameCfg),
	}
}

func (a *AccessService) CanViewProfile(ctx context.Context, viewerID string, target *model.Profile) (bool, error) {
	return a.resolver.CanViewProfile(ctx, viewerID, target)
}

func (a *AccessService) CanViewCatalogItem(ctx context.Context, viewerID string, item *model.CatalogItem) (bool, error) {
	return a.resolver.CanViewCatalogItem(ctx, viewerID, item)
}

func (a *AccessService) ResolveRedirect(ctx context.Context, requestedUsername string) (*RedirectResult, error) {
	return a.username.ResolveRedirect(ctx, requestedUsername)
}

func (a *AccessService) Rename(ctx context.Context, actingUserID, newUsernameRaw string) (*RenameResult, error) {
	return a.username.Rename(ctx, actingUserID, newUsernameRaw)
}

func (a *AccessService) CheckAvailability(ctx context.Context, raw string) (bool, error) {
	return a.username.CheckAvailability(ctx, raw)
}

func (a *AccessService) RequestFollow(ctx context.Context, followerID, followeeID string) error {
	return a.graph.RequestFollow(ctx, followerID, followeeID)
}

func (a *AccessService) RespondFollow(ctx context.Context, followeeID, followerID, decision string) error {
	return a.graph.RespondFollow(ctx, followeeID, followerID, decision)
}

func (a *AccessService) RemoveEdge(ctx context.Context, requesterID, followerID, followeeID string) error {
	return a.graph.RemoveEdge(ctx, requesterID, followerID, followeeID)
}

// Listing helpers for the acting user's own edges; not part of the guarded
// read surface because they only ever show the caller their own rows.
func (a *AccessService) ListPendingRequests(ctx context.Context, followeeID string, page, pageSize int) ([]string, error) {
	return a.graph.ListPendingRequests(ctx, followeeID, page, pageSize)
}

func (a *AccessService) ListFollowing(ctx context.Context, followerID string, page, pageSize int) ([]string, error) {
	return a.graph.ListFollowing(ctx, followerID, page, pageSize)
}
