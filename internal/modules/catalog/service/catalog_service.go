package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"microhub/internal/modules/catalog/domain"
	catalogout "microhub/internal/modules/catalog/port/out"
	apperrors "microhub/internal/platform/errors"
)

// CatalogService loads the registry on first use and serves it read-only.
type CatalogService struct {
	source catalogout.CourseSource

	once     sync.Once
	registry *domain.Registry
	loadErr  error
}

func NewCatalogService(source catalogout.CourseSource) *CatalogService {
	return &CatalogService{source: source}
}

func (s *CatalogService) Registry(ctx context.Context) (*domain.Registry, error) {
	s.once.Do(func() {
		s.registry, s.loadErr = s.source.Load(ctx)
	})
	return s.registry, s.loadErr
}

func (s *CatalogService) List(ctx context.Context, filter domain.Filter) ([]domain.Course, error) {
	reg, err := s.Registry(ctx)
	if err != nil {
		return nil, err
	}
	return reg.List(filter), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Course, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	reg, err := s.Registry(ctx)
	if err != nil {
		return nil, err
	}
	course, ok := reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("course %q: %w", id, apperrors.ErrNotFound)
	}
	return course, nil
}
