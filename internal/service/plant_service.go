package service

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"plantstore/internal/domain"
	"plantstore/internal/repository"
	"plantstore/pkg/utils"
)

// imageFolder is the logical folder all plant images live under in the
// object store. Key extraction on the delete path depends on it.
const imageFolder = "plants"

var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// PlantService orchestrates plant records together with their images:
// uploads before record writes, advisory cleanup after. Each call is a
// single linear flow with no persisted state between requests.
type PlantService interface {
	Add(ctx context.Context, in domain.PlantInput, imagePaths []string) (*domain.Plant, error)
	Update(ctx context.Context, id string, upd domain.PlantUpdate, imagePaths []string) (*domain.Plant, error)
	Remove(ctx context.Context, idOrName string) error
	Get(ctx context.Context, id string) (*domain.Plant, error)
	List(ctx context.Context) ([]domain.Plant, error)
}

type plantService struct {
	plants repository.PlantRepository
	images repository.ImageRepository
	log    *zap.Logger
}

func NewPlantService(plants repository.PlantRepository, images repository.ImageRepository, log *zap.Logger) PlantService {
	return &plantService{
		plants: plants,
		images: images,
		log:    log,
	}
}

// Add creates a plant from validated input. Image files are uploaded
// concurrently, slot order preserved; any failed upload aborts the
// whole operation before a record is written. With no files the record
// gets exactly one generated placeholder, never an empty image set.
func (s *plantService) Add(ctx context.Context, in domain.PlantInput, imagePaths []string) (*domain.Plant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	images, err := s.uploadAll(ctx, imagePaths)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		images = []string{utils.PlaceholderSVG(150, 150, "Plant Image")}
	}

	plant := &domain.Plant{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Category:      in.Category,
		Rating:        in.Rating,
		StockQuantity: in.StockQuantity,
		Popular:       in.Popular,
		Care:          in.Care,
		Images:        images,
		Date:          time.Now(),
	}

	created, err := s.plants.Create(ctx, plant)
	if err != nil {
		return nil, err
	}

	s.log.Info("Plant added",
		zap.String("id", created.ID.Hex()),
		zap.String("name", created.Name),
		zap.Int("images", len(created.Images)))

	return created, nil
}

// Update applies a partial update. When new image files are supplied
// the old non-placeholder images are deleted only after every new
// image is durably stored, and the image set is replaced wholesale;
// with no files the stored set is left untouched.
func (s *plantService) Update(ctx context.Context, id string, upd domain.PlantUpdate, imagePaths []string) (*domain.Plant, error) {
	current, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(imagePaths) > 0 {
		newImages, err := s.uploadAll(ctx, imagePaths)
		if err != nil {
			return nil, err
		}
		s.cleanupImages(ctx, current.Images)
		upd.Images = newImages
	}

	updated, err := s.plants.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info("Plant updated", zap.String("id", id))

	return updated, nil
}

// Remove deletes a plant addressed either by its 24-hex store id or,
// as a fallback, by alternate id / exact name. Image cleanup runs
// after the record is gone and never rolls the deletion back.
func (s *plantService) Remove(ctx context.Context, idOrName string) error {
	var (
		plant *domain.Plant
		err   error
	)

	if hexIDPattern.MatchString(idOrName) {
		plant, err = s.plants.DeleteByID(ctx, idOrName)
	} else {
		plant, err = s.plants.DeleteByName(ctx, idOrName)
	}
	if err != nil {
		return err
	}

	s.cleanupImages(ctx, plant.Images)

	s.log.Info("Plant removed",
		zap.String("id", plant.ID.Hex()),
		zap.String("name", plant.Name))

	return nil
}

func (s *plantService) Get(ctx context.Context, id string) (*domain.Plant, error) {
	return s.plants.FindByID(ctx, id)
}

func (s *plantService) List(ctx context.Context) ([]domain.Plant, error) {
	return s.plants.ListAll(ctx)
}

// uploadAll transfers every file concurrently, preserving slot order
// in the returned URLs. The first failure aborts the group; already
// uploaded siblings are left behind (no rollback).
func (s *plantService) uploadAll(ctx context.Context, imagePaths []string) ([]string, error) {
	if len(imagePaths) == 0 {
		return nil, nil
	}

	urls := make([]string, len(imagePaths))
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range imagePaths {
		i, path := i, path
		g.Go(func() error {
			url, err := s.images.Upload(gctx, path, imageFolder)
			if err != nil {
				return fmt.Errorf("image slot %d: %w", i+1, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return urls, nil
}

// cleanupImages issues best-effort deletes for every remote image.
// Placeholders and unrecognized URLs are skipped; failures are logged
// and swallowed.
func (s *plantService) cleanupImages(ctx context.Context, imageURLs []string) {
	var wg sync.WaitGroup

	for _, imageURL := range imageURLs {
		if utils.IsPlaceholder(imageURL) {
			continue
		}
		key := repository.KeyFromURL(imageURL)
		if key == "" {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.images.Delete(ctx, key); err != nil {
				s.log.Warn("Image cleanup failed",
					zap.String("key", key),
					zap.Error(err))
			}
		}()
	}

	wg.Wait()
}
