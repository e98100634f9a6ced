package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/models"
	"github.com/charlesng35/catcatalog/pkg/metrics"
)

const createBatchSize = 100

// CatService manages CRUD operations for cats.
type CatService struct {
	db    *gorm.DB
	names NameGenerator
}

// NewCatService constructs a cat service once a database handle is supplied.
// names fills in the name of cats created without one.
func NewCatService(db *gorm.DB, names NameGenerator) (*CatService, error) {
	if db == nil {
		return nil, errors.New("cat service: db is required")
	}
	if names == nil {
		return nil, errors.New("cat service: name generator is required")
	}
	return &CatService{db: db, names: names}, nil
}

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// CreateCatInput captures the fields of a new cat. Values are stored as given;
// only an empty Name is replaced with a generated one.
type CreateCatInput struct {
	ImageURL    string
	Name        string
	Description string
	Origin      string
	LifeSpan    string
	Breed       string
	Favorite    bool
}

// UpdateCatInput describes mutable cat fields. A nil pointer indicates no change.
type UpdateCatInput struct {
	ImageURL    *string
	Name        *string
	Description *string
	Origin      *string
	LifeSpan    *string
	Breed       *string
	Favorite    *bool
}

func (in UpdateCatInput) changes() map[string]any {
	updates := make(map[string]any)
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}

	setString("image_url", in.ImageURL)
	setString("name", in.Name)
	setString("description", in.Description)
	setString("origin", in.Origin)
	setString("life_span", in.LifeSpan)
	setString("breed", in.Breed)
	if in.Favorite != nil {
		updates["favorite"] = *in.Favorite
	}
	return updates
}

// List returns every cat ordered by id.
func (s *CatService) List(ctx context.Context) ([]models.Cat, error) {
	if s == nil {
		return nil, errors.New("cat service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var cats []models.Cat
	err := s.db.WithContext(ctx).Order("id ASC").Find(&cats).Error
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("cat service: list: %w", err)
	}
	return cats, nil
}

// Get loads a single cat.
func (s *CatService) Get(ctx context.Context, id uint) (*models.Cat, error) {
	if s == nil {
		return nil, errors.New("cat service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	cat, err := s.find(s.db.WithContext(ctx), id)
	observe("get", err)
	return cat, err
}

// Create persists a new cat and returns it with its assigned id.
func (s *CatService) Create(ctx context.Context, input CreateCatInput) (*models.Cat, error) {
	if s == nil {
		return nil, errors.New("cat service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	cat := models.Cat{
		ImageURL:    input.ImageURL,
		Name:        input.Name,
		Description: input.Description,
		Origin:      input.Origin,
		LifeSpan:    input.LifeSpan,
		Breed:       input.Breed,
		Favorite:    input.Favorite,
	}
	if cat.Name == "" {
		cat.Name = s.names.next()
	}

	err := s.db.WithContext(ctx).Create(&cat).Error
	observe("create", err)
	if err != nil {
		return nil, fmt.Errorf("cat service: create: %w", err)
	}
	return &cat, nil
}

// Update applies the provided changes to an existing cat and returns the
// stored result.
func (s *CatService) Update(ctx context.Context, id uint, input UpdateCatInput) (*models.Cat, error) {
	if s == nil {
		return nil, errors.New("cat service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var updated *models.Cat
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := s.find(tx, id)
		if err != nil {
			return err
		}

		if updates := input.changes(); len(updates) > 0 {
			if err := tx.Model(cat).Updates(updates).Error; err != nil {
				return fmt.Errorf("cat service: update: %w", err)
			}
			if cat, err = s.find(tx, id); err != nil {
				return err
			}
		}

		updated = cat
		return nil
	})
	observe("update", err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a cat permanently.
func (s *CatService) Delete(ctx context.Context, id uint) error {
	if s == nil {
		return errors.New("cat service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	result := s.db.WithContext(ctx).Delete(&models.Cat{}, id)
	err := result.Error
	if err == nil && result.RowsAffected == 0 {
		err = ErrCatNotFound
	}
	observe("delete", err)
	if err != nil && !errors.Is(err, ErrCatNotFound) {
		return fmt.Errorf("cat service: delete: %w", err)
	}
	return err
}

// CreateBatch inserts cats in a single transaction; either every row is
// committed or none are.
func (s *CatService) CreateBatch(ctx context.Context, cats []models.Cat) error {
	if s == nil {
		return errors.New("cat service: service not initialised")
	}
	if len(cats) == 0 {
		return nil
	}
	ctx = ensuredContext(ctx)

	for i := range cats {
		if cats[i].Name == "" {
			cats[i].Name = s.names.next()
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&cats, createBatchSize).Error
	})
	observe("create_batch", err)
	if err != nil {
		return fmt.Errorf("cat service: create batch: %w", err)
	}
	return nil
}

// Count returns the number of stored cats.
func (s *CatService) Count(ctx context.Context) (int64, error) {
	if s == nil {
		return 0, errors.New("cat service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Cat{}).Count(&total).Error
	observe("count", err)
	if err != nil {
		return 0, fmt.Errorf("cat service: count: %w", err)
	}
	return total, nil
}

func (s *CatService) find(db *gorm.DB, id uint) (*models.Cat, error) {
	if id == 0 {
		return nil, ErrCatNotFound
	}

	var cat models.Cat
	if err := db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatNotFound
		}
		return nil, fmt.Errorf("cat service: get: %w", err)
	}
	return &cat, nil
}

func observe(operation string, err error) {
	result := "success"
	switch {
	case errors.Is(err, ErrCatNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	metrics.CatOperations.WithLabelValues(operation, result).Inc()
}
