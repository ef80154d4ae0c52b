package services

import (
	"context"
	"strings"

	"pos-kemasan/apperr"
	"pos-kemasan/models"
	"pos-kemasan/repositories"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

type CategoryService struct {
	store *repositories.Store
}

func NewCategoryService(store *repositories.Store) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]models.MaterialCategory, error) {
	return s.store.Categories.GetAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.MaterialCategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	taken, err := s.store.Categories.NameTaken(ctx, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Nama kategori sudah ada.")
	}
	category := &models.MaterialCategory{Name: in.Name}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.MaterialCategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.store.Categories.GetByID(ctx, id); err != nil {
		return nil, err
	}
	taken, err := s.store.Categories.NameTaken(ctx, in.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Nama kategori sudah ada.")
	}
	if err := s.store.Categories.Rename(ctx, id, in.Name); err != nil {
		return nil, err
	}
	return s.store.Categories.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.store.Categories.Delete(ctx, id)
}
