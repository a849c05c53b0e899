package packages

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context) ([]Package, error)
	Get(ctx context.Context, slug string) (*Package, error)
	Create(ctx context.Context, req CreatePackageRequest) (*Package, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePackageRequest) (*Package, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Package, error) {
	return s.repo.ListActive()
}

func (s *service) Get(ctx context.Context, slug string) (*Package, error) {
	return s.repo.GetBySlug(slug)
}

func (s *service) Create(ctx context.Context, req CreatePackageRequest) (*Package, error) {
	pkg := &Package{
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Active:        true,
	}
	if err := s.repo.Create(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdatePackageRequest) (*Package, error) {
	pkg, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.PricePerNight != nil {
		pkg.PricePerNight = *req.PricePerNight
	}
	if req.Active != nil {
		pkg.Active = *req.Active
	}

	if err := s.repo.Update(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(id)
}
