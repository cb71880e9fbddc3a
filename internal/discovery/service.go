package discovery

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Catalog

import (
	"context"
	"log/slog"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/requestcontext"
)

// Catalog supplies the discovery entries, best score first.
type Catalog interface {
	Lawyers(ctx context.Context) ([]Lawyer, error)
	NGOs(ctx context.Context) ([]NGO, error)
}

type Service struct {
	catalog Catalog
	facets  Facets
	logger  *slog.Logger
}

func NewService(catalog Catalog, logger *slog.Logger) *Service {
	return &Service{catalog: catalog, facets: DefaultFacets(), logger: logger}
}

func (s *Service) SearchLawyers(ctx context.Context, f LawyerFilter) (Result[Lawyer], error) {
	all, err := s.catalog.Lawyers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load lawyer catalog",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return Result[Lawyer]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lawyers")
	}
	return FilterLawyers(all, f), nil
}

func (s *Service) SearchNGOs(ctx context.Context, f NGOFilter) (Result[NGO], error) {
	all, err := s.catalog.NGOs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load ngo catalog",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return Result[NGO]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load NGOs")
	}
	return FilterNGOs(all, f), nil
}

func (s *Service) Facets() Facets {
	return s.facets
}
