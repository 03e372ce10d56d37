package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
	"github.com/shelfmark/shelfmark/pkg/database"
	"github.com/shelfmark/shelfmark/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Seeds a small fixture world for local development: alice (public) with a
// shelf, bob (followers-only) approved to follow her, and carol pending.
func main() {
	cfg := must(config.Load())
	_ = logger.Init("debug")
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	profileRepo := repository.NewProfileRepository(db)
	followRepo := repository.NewFollowRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	aliasRepo := repository.NewAliasRepository(db)
	access := service.NewAccessService(db, profileRepo, followRepo, catalogRepo, aliasRepo, cfg.Username)
	catalogSvc := service.NewCatalogService(catalogRepo, access)

	users := map[string]string{
		"alice": model.VisibilityPublic,
		"bob":   model.VisibilityFollowersOnly,
		"carol": model.VisibilityFollowersOnly,
	}
	ids := make(map[string]string, len(users))
	for name, vis := range users {
		p := model.Profile{ID: uuid.New().String(), Username: name, Visibility: vis}
		if err := db.Where("username = ?", name).FirstOrCreate(&p).Error; err != nil {
			panic(err)
		}
		ids[name] = p.ID
	}

	_ = access.RequestFollow(ctx, ids["bob"], ids["alice"])
	_ = access.RespondFollow(ctx, ids["alice"], ids["bob"], service.DecisionApprove)
	_ = access.RequestFollow(ctx, ids["carol"], ids["alice"])

	books := []service.AddItemInput{
		{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "978-0441478125"},
		{Title: "Piranesi", Author: "Susanna Clarke", ISBN: "978-1635575637", Visibility: model.VisibilityFollowersOnly},
		{Title: "The Dispossessed", Author: "Ursula K. Le Guin", ISBN: "978-0061054884", Visibility: model.VisibilityPublic},
	}
	for _, b := range books {
		if _, err := catalogSvc.AddItem(ctx, ids["alice"], b); err != nil {
			panic(err)
		}
	}

	fmt.Printf("seeded %d profiles, %d items\n", len(ids), len(books))
	for name, id := range ids {
		fmt.Printf("  %s -> %s\n", name, id)
	}
}
