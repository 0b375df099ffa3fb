package usecase

import (
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/domain/interfaces"
	"github.com/secmon-lab/airisk/pkg/utils/metrics"
)

type UseCases struct {
	repo       interfaces.Repository
	catalog    *catalog.Catalog
	metrics    *metrics.Recorder
	Assessment *AssessmentUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

// WithCatalog replaces the built-in catalog
func WithCatalog(c *catalog.Catalog) Option {
	return func(uc *UseCases) {
		uc.catalog = c
	}
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		catalog: catalog.Default(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.catalog, uc.metrics)

	return uc
}

// Catalog returns the catalog used for localized output
func (uc *UseCases) Catalog() *catalog.Catalog {
	return uc.catalog
}

// Repository returns the backing repository
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}
