package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	access   *AccessService
	profiles *ProfileService
	catalog  *CatalogService
}

func testUsernameConfig() config.UsernameConfig {
	return config.UsernameConfig{
		MinLen: 3,
		MaxLen: 24,
		Reserved: []string{
			"app", "api", "u", "b", "books", "setup", "settings",
			"auth", "login", "logout", "signup", "signin",
			"www", "admin", "root", "support", "help",
		},
		DefaultVisibility: "followers_only",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// a single connection keeps every session on the same in-memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Profile{}, &model.FollowEdge{}, &model.CatalogItem{}, &model.UsernameAlias{},
	))

	profileRepo := repository.NewProfileRepository(db)
	followRepo := repository.NewFollowRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	aliasRepo := repository.NewAliasRepository(db)

	cfg := testUsernameConfig()
	access := NewAccessService(db, profileRepo, followRepo, catalogRepo, aliasRepo, cfg)
	return &testEnv{
		db:       db,
		access:   access,
		profiles: NewProfileService(profileRepo, access, cfg),
		catalog:  NewCatalogService(catalogRepo, access),
	}
}

func (e *testEnv) mustProfile(t *testing.T, username, visibility string) *model.Profile {
	t.Helper()
	p := &model.Profile{ID: uuid.New().String(), Username: username, Visibility: visibility}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) mustItem(t *testing.T, ownerID, title, visibility string) *model.CatalogItem {
	t.Helper()
	it := &model.CatalogItem{ID: uuid.New().String(), OwnerID: ownerID, Title: title, Visibility: visibility}
	require.NoError(t, e.db.Create(it).Error)
	return it
}

func (e *testEnv) mustEdge(t *testing.T, followerID, followeeID string, status int16) {
	t.Helper()
	require.NoError(t, e.db.Create(&model.FollowEdge{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		Status:     status,
	}).Error)
}
