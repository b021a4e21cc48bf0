package usecase

import (
	"context"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
)

// DashboardUseCase resume los datos del usuario para las tarjetas del dashboard.
type DashboardUseCase struct {
	sites repository.SiteRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sites repository.SiteRepository) *DashboardUseCase {
	return &DashboardUseCase{sites: sites}
}

// Summary calcula los totales a partir de los sitios del usuario.
// Las automatizaciones aún no se ejecutan, por eso ActiveAutomations es siempre 0.
func (uc *DashboardUseCase) Summary(ctx context.Context, id *entity.Identity) (*dto.DashboardSummaryResponse, error) {
	if id == nil || id.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	sites, err := uc.sites.ListByOwner(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardSummaryResponse{
		TotalSites:   len(sites),
		TokenBalance: id.TokenBalance,
	}
	for _, s := range sites {
		if s.Status == entity.SiteStatusActive {
			out.ActiveSites++
		}
		out.TotalArticles += s.Counts.Articles
	}
	return out, nil
}
