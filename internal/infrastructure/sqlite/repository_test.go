package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db))
	t.Cleanup(func() { db.Close() })
	return db
}

func newUser(email string) *entity.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.User{
		ID:           uuid.NewString(),
		Name:         "Test",
		Email:        email,
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		TokenBalance: entity.WelcomeBonus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newSite(ownerID, url string, p entity.Platform) *entity.Site {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.Site{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      "Blog",
		URL:       url,
		Platform:  p,
		Status:    entity.SiteStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserRepo(t *testing.T) {
	db := openDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	u := newUser("ann@x.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, 100, got.TokenBalance)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	missing, err := repo.GetByEmail(ctx, "nadie@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := newUser("ann@x.com")
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSiteRepo_ConfigYConteos(t *testing.T) {
	db := openDB(t)
	users := sqlite.NewUserRepository(db)
	repo := sqlite.NewSiteRepository(db)
	ctx := context.Background()

	owner := newUser("ann@x.com")
	require.NoError(t, users.Create(ctx, owner))

	cfg := &entity.WordPressConfig{Username: "admin", Password: "pw", APIURL: "https://a.com/wp-json"}
	site := newSite(owner.ID, "https://a.com", entity.NewPlatform(entity.SiteTypeWordPress, cfg))
	require.NoError(t, repo.Create(ctx, site))

	for _, table := range []string{"articles", "articles", "automations", "sources"} {
		_, err := db.ExecContext(ctx, `INSERT INTO `+table+` (id, site_id, created_at) VALUES (?, ?, 0)`, uuid.NewString(), site.ID)
		require.NoError(t, err)
	}

	got, err := repo.GetByIDForOwner(ctx, site.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.SiteTypeWordPress, got.Platform.Type)
	assert.Equal(t, cfg, got.Platform.WordPress)
	assert.Equal(t, entity.SiteCounts{Articles: 2, Automations: 1, Sources: 1}, got.Counts)

	// Eliminar el sitio elimina sus dependientes.
	require.NoError(t, repo.Delete(ctx, site.ID, owner.ID))
	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM articles`))
	assert.Zero(t, n)
}

func TestSiteRepo_AlcanceDelDueno(t *testing.T) {
	db := openDB(t)
	users := sqlite.NewUserRepository(db)
	repo := sqlite.NewSiteRepository(db)
	ctx := context.Background()

	ann, bob := newUser("ann@x.com"), newUser("bob@x.com")
	require.NoError(t, users.Create(ctx, ann))
	require.NoError(t, users.Create(ctx, bob))

	site := newSite(ann.ID, "https://a.com", entity.NewPlatform(entity.SiteTypeGeneric, nil))
	require.NoError(t, repo.Create(ctx, site))

	got, err := repo.GetByIDForOwner(ctx, site.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	foreign := *site
	foreign.UserID = bob.ID
	foreign.Name = "Robado"
	assert.ErrorIs(t, repo.Update(ctx, &foreign), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, site.ID, bob.ID), domain.ErrNotFound)

	list, err := repo.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSiteRepo_URLUnicaPorDueno(t *testing.T) {
	db := openDB(t)
	users := sqlite.NewUserRepository(db)
	repo := sqlite.NewSiteRepository(db)
	ctx := context.Background()

	owner := newUser("ann@x.com")
	require.NoError(t, users.Create(ctx, owner))

	a := newSite(owner.ID, "https://a.com", entity.NewPlatform(entity.SiteTypeGeneric, nil))
	b := newSite(owner.ID, "https://b.com", entity.NewPlatform(entity.SiteTypeGeneric, nil))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.ErrorIs(t, repo.Create(ctx, newSite(owner.ID, "https://a.com", entity.NewPlatform(entity.SiteTypeGeneric, nil))), domain.ErrConflict)

	b.URL = "https://a.com"
	assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrConflict)

	exists, err := repo.ExistsByURL(ctx, owner.ID, "https://a.com", "")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByURL(ctx, owner.ID, "https://a.com", a.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSiteRepo_ListaMasRecientesPrimero(t *testing.T) {
	db := openDB(t)
	users := sqlite.NewUserRepository(db)
	repo := sqlite.NewSiteRepository(db)
	ctx := context.Background()

	owner := newUser("ann@x.com")
	require.NoError(t, users.Create(ctx, owner))

	old := newSite(owner.ID, "https://old.com", entity.NewPlatform(entity.SiteTypeGeneric, nil))
	old.CreatedAt = old.CreatedAt.Add(-time.Hour)
	recent := newSite(owner.ID, "https://new.com", entity.NewPlatform(entity.SiteTypeGeneric, nil))
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)
}
