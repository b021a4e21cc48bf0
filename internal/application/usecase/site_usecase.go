package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/application/validation"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
)

// SiteUseCase CRUD de sitios limitado al dueño autenticado.
// El ownerID siempre viene de la identidad resuelta, nunca del cuerpo de la petición.
type SiteUseCase struct {
	repo repository.SiteRepository
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(repo repository.SiteRepository) *SiteUseCase {
	return &SiteUseCase{repo: repo}
}

// List lista los sitios del usuario, más recientes primero.
func (uc *SiteUseCase) List(ctx context.Context, ownerID string) (*dto.SiteListResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SiteResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSiteResponse(s))
	}
	return &dto.SiteListResponse{Sites: items}, nil
}

// Create valida y crea un sitio. ErrConflict si el usuario ya tiene la URL.
func (uc *SiteUseCase) Create(ctx context.Context, ownerID string, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// Atajo para dar un error claro; la restricción UNIQUE es la que decide.
	exists, err := uc.repo.ExistsByURL(ctx, ownerID, in.URL, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	site := &entity.Site{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Name:      in.Name,
		URL:       in.URL,
		Platform:  entity.NewPlatform(entity.SiteType(in.Type), toWordPressConfig(in.Config)),
		Status:    entity.SiteStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	out := toSiteResponse(site)
	return &out, nil
}

// Get obtiene un sitio del usuario. ErrNotFound si no existe o es de otro usuario.
func (uc *SiteUseCase) Get(ctx context.Context, ownerID, id string) (*dto.SiteResponse, error) {
	site, err := uc.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	out := toSiteResponse(site)
	return &out, nil
}

// Update aplica una actualización parcial: los campos omitidos no cambian.
func (uc *SiteUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name = &v
	}
	if in.URL != nil {
		v := strings.TrimSpace(*in.URL)
		in.URL = &v
	}
	// Primero la propiedad: un sitio ajeno responde NotFound aunque el cuerpo sea inválido.
	site, err := uc.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if in.URL != nil && *in.URL != site.URL {
		exists, err := uc.repo.ExistsByURL(ctx, ownerID, *in.URL, site.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrConflict
		}
		site.URL = *in.URL
	}
	if in.Name != nil {
		site.Name = *in.Name
	}
	if in.Status != nil {
		site.Status = entity.SiteStatus(*in.Status)
	}
	var newType *entity.SiteType
	if in.Type != nil {
		t := entity.SiteType(*in.Type)
		newType = &t
	}
	site.Platform = site.Platform.Apply(newType, toWordPressConfig(in.Config))
	site.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	if err := uc.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	out := toSiteResponse(site)
	return &out, nil
}

// Delete elimina el sitio del usuario en una sola consulta (id, user_id).
func (uc *SiteUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if uuid.Validate(id) != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id, ownerID)
}

func (uc *SiteUseCase) find(ctx context.Context, ownerID, id string) (*entity.Site, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	// Un id mal formado es indistinguible de uno inexistente.
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	site, err := uc.repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return site, nil
}

func toWordPressConfig(in *dto.WordPressConfigInput) *entity.WordPressConfig {
	if in == nil {
		return nil
	}
	return &entity.WordPressConfig{
		Username: in.Username,
		Password: in.Password,
		APIURL:   in.APIURL,
	}
}

func toSiteResponse(s *entity.Site) dto.SiteResponse {
	out := dto.SiteResponse{
		ID:     s.ID,
		Name:   s.Name,
		URL:    s.URL,
		Type:   string(s.Platform.Type),
		Status: string(s.Status),
		Counts: dto.SiteCountsResponse{
			Articles:    s.Counts.Articles,
			Automations: s.Counts.Automations,
			Sources:     s.Counts.Sources,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if wp := s.Platform.WordPress; wp != nil {
		out.Config = &dto.WordPressConfigResponse{
			Username:    wp.Username,
			APIURL:      wp.APIURL,
			HasPassword: wp.Password != "",
		}
	}
	return out
}
