package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/application/usecase"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/sqlite"
)

func TestDashboardUseCase_Summary(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "ann@x.com")
	other := seedUser(t, db, "bob@x.com")
	repo := sqlite.NewSiteRepository(db)
	sites := usecase.NewSiteUseCase(repo)
	ctx := context.Background()

	a, err := sites.Create(ctx, owner, dto.CreateSiteRequest{Name: "A", URL: "https://a.com", Type: "GENERIC"})
	require.NoError(t, err)
	b, err := sites.Create(ctx, owner, dto.CreateSiteRequest{Name: "B", URL: "https://b.com", Type: "GENERIC"})
	require.NoError(t, err)
	_, err = sites.Update(ctx, owner, b.ID, dto.UpdateSiteRequest{Status: strPtr("INACTIVE")})
	require.NoError(t, err)
	_, err = sites.Create(ctx, other, dto.CreateSiteRequest{Name: "C", URL: "https://c.com", Type: "GENERIC"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := db.ExecContext(ctx, `INSERT INTO articles (id, site_id, created_at) VALUES (?, ?, 0)`, uuid.NewString(), a.ID)
		require.NoError(t, err)
	}

	uc := usecase.NewDashboardUseCase(repo)
	out, err := uc.Summary(ctx, &entity.Identity{UserID: owner, TokenBalance: 100})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalSites)
	assert.Equal(t, 1, out.ActiveSites)
	assert.Equal(t, 3, out.TotalArticles)
	assert.Equal(t, 0, out.ActiveAutomations)
	assert.Equal(t, 100, out.TokenBalance)
}

func TestDashboardUseCase_SinIdentidad(t *testing.T) {
	uc := usecase.NewDashboardUseCase(sqlite.NewSiteRepository(newTestDB(t)))
	_, err := uc.Summary(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
