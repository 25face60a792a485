package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/listview"
)

// ListQuery carries the search box and column sort of a list screen.
type ListQuery struct {
	Search string
	Sort   listview.SortState
}

// CatalogUseCase serves the wizard's pick lists. Fetch failures degrade to empty lists,
// except an expired session which is reported so the caller can re-authenticate.
type CatalogUseCase struct {
	client backend.Client
	logger *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(client backend.Client, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{client: client, logger: logger}
}

// Materials returns the material catalog grouped by supplier.
func (u *CatalogUseCase) Materials(ctx context.Context, session model.Session, q ListQuery) ([]listview.SupplierGroup, error) {
	items, err := u.client.Materials(ctx, session)
	if err := u.fetchFailed("materials", err); err != nil {
		return nil, err
	}
	return listview.MaterialView(items, q.Search, q.Sort), nil
}

// Fleets returns the fleet catalog.
func (u *CatalogUseCase) Fleets(ctx context.Context, session model.Session, q ListQuery) ([]model.FleetItem, error) {
	items, err := u.client.Fleets(ctx, session)
	if err := u.fetchFailed("fleets", err); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.FleetItem{}
	}
	return listview.SortFleets(listview.FilterFleets(items, q.Search), q.Sort), nil
}

// Projects returns the projects an order can be placed for.
func (u *CatalogUseCase) Projects(ctx context.Context, session model.Session) ([]model.Project, error) {
	projects, err := u.client.Projects(ctx, session)
	if err := u.fetchFailed("projects", err); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// fetchFailed logs err and returns it only when the session is no longer valid.
func (u *CatalogUseCase) fetchFailed(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domainErrors.ErrUnauthorized) {
		return err
	}
	u.logger.Error("catalog fetch failed", slog.String("resource", resource), slog.Any("error", err))
	return nil
}
