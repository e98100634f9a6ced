package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/charlesng35/catcatalog/internal/catapi"
	"github.com/charlesng35/catcatalog/internal/models"
	"github.com/charlesng35/catcatalog/pkg/logger"
	"github.com/charlesng35/catcatalog/pkg/metrics"
)

// ImageSearcher is the subset of the upstream client the importer needs.
type ImageSearcher interface {
	SearchImages(ctx context.Context, params catapi.SearchParams) ([]catapi.Image, error)
}

// SeedOptions tunes a single import run.
type SeedOptions struct {
	Limit int
	// SkipIfPopulated turns the import into a no-op when cats already exist.
	SkipIfPopulated bool
}

// SeedResult summarises an import run.
type SeedResult struct {
	Fetched  int
	Imported int
	Skipped  int
	// AlreadyPopulated is set when SkipIfPopulated prevented the import.
	AlreadyPopulated bool
}

// SeedService imports breed-tagged images from the upstream API as cats.
type SeedService struct {
	cats     *CatService
	upstream ImageSearcher
	names    NameGenerator
	opts     SeedOptions
	log      *zap.Logger
}

// NewSeedService wires the importer.
func NewSeedService(cats *CatService, upstream ImageSearcher, names NameGenerator, opts SeedOptions) (*SeedService, error) {
	if cats == nil {
		return nil, errors.New("seed service: cat service is required")
	}
	if upstream == nil {
		return nil, errors.New("seed service: upstream client is required")
	}
	if names == nil {
		return nil, errors.New("seed service: name generator is required")
	}
	if opts.Limit <= 0 || opts.Limit > catapi.MaxSearchLimit {
		opts.Limit = catapi.MaxSearchLimit
	}

	return &SeedService{
		cats:     cats,
		upstream: upstream,
		names:    names,
		opts:     opts,
		log:      logger.WithModule("seed"),
	}, nil
}

// Seed fetches one page of images and stores a cat for each image that
// carries breed data. Nothing is written unless the fetch and mapping
// succeed; all rows are committed together.
func (s *SeedService) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	if s == nil {
		return result, errors.New("seed service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if s.opts.SkipIfPopulated {
		total, err := s.cats.Count(ctx)
		if err != nil {
			metrics.SeedRuns.WithLabelValues("failure").Inc()
			return result, fmt.Errorf("%w: %w", ErrSeedAborted, err)
		}
		if total > 0 {
			result.AlreadyPopulated = true
			metrics.SeedRuns.WithLabelValues("skipped").Inc()
			s.log.Info("catalogue already populated; skipping import", zap.Int64("existing", total))
			return result, nil
		}
	}

	images, err := s.upstream.SearchImages(ctx, catapi.SearchParams{
		Limit:     s.opts.Limit,
		HasBreeds: true,
	})
	if err != nil {
		metrics.SeedRuns.WithLabelValues("failure").Inc()
		return result, fmt.Errorf("%w: %w", ErrSeedAborted, err)
	}
	result.Fetched = len(images)

	cats := s.buildCats(images)
	result.Skipped = result.Fetched - len(cats)

	if err := s.cats.CreateBatch(ctx, cats); err != nil {
		metrics.SeedRuns.WithLabelValues("failure").Inc()
		return result, fmt.Errorf("%w: %w", ErrSeedAborted, err)
	}
	result.Imported = len(cats)

	metrics.SeedRuns.WithLabelValues("success").Inc()
	metrics.SeedImported.Add(float64(result.Imported))
	s.log.Info("cats imported",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *SeedService) buildCats(images []catapi.Image) []models.Cat {
	cats := make([]models.Cat, 0, len(images))
	for _, image := range images {
		breed, ok := image.PrimaryBreed()
		if !ok {
			continue
		}
		cats = append(cats, models.Cat{
			ImageURL:    image.URL,
			Name:        s.names.next(),
			Description: breed.Description,
			Origin:      breed.Origin,
			LifeSpan:    breed.LifeSpan,
			Breed:       breed.Name,
		})
	}
	return cats
}
