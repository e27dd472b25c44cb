package seeder

import (
	"context"
	"fmt"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/repository"
	"github.com/fikaregister/fika-api/internal/service"
	"go.uber.org/zap"
)

// Seeder loads seed data. Places and reviews go through the service layer so
// slugs, category links and rating aggregates are produced the same way as
// for API writes; the category vocabulary is upserted directly because the
// service only creates bare categories on demand.
type Seeder struct {
	svc    service.ServiceInterface
	store  repository.Store
	logger *zap.Logger
}

func NewSeeder(svc service.ServiceInterface, store repository.Store, logger *zap.Logger) *Seeder {
	return &Seeder{svc: svc, store: store, logger: logger}
}

// Run creates the seed file's categories, places and reviews. Reviews marked
// approved in the seed data go through moderation so they count toward the
// ratings.
func (s *Seeder) Run(ctx context.Context, file *SeedFile) error {
	for _, sc := range file.Categories {
		category := model.Category{Name: sc.Name, Description: sc.Description, Icon: sc.Icon}
		if err := s.store.Category().Upsert(ctx, &category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", sc.Name, err)
		}
	}

	places := 0
	reviews := 0

	for _, sp := range file.Places {
		place, err := s.svc.CreatePlace(ctx, sp.PlaceCreate())
		if err != nil {
			return fmt.Errorf("failed to seed place %q: %w", sp.Name, err)
		}
		places++

		if sp.Verified {
			verified := true
			if _, err := s.svc.UpdatePlace(ctx, place.ID, &model.PlaceUpdate{Verified: &verified}); err != nil {
				return fmt.Errorf("failed to verify place %q: %w", sp.Name, err)
			}
		}

		for _, sr := range sp.Reviews {
			review, err := s.svc.CreateReview(ctx, &model.ReviewCreate{
				PlaceID:   place.ID,
				Rating:    sr.Rating,
				Comment:   sr.Comment,
				FikaItems: sr.FikaItems,
				VisitDate: sr.VisitDate,
				VisitTime: sr.VisitTime,
				UserName:  sr.UserName,
				Language:  sr.Language,
			})
			if err != nil {
				return fmt.Errorf("failed to seed review for %q: %w", sp.Name, err)
			}
			reviews++

			if sr.Approved {
				_, err := s.svc.ModerateReview(ctx, &model.ModerationRequest{
					ReviewID: review.ID,
					Action:   "approve",
				})
				if err != nil {
					return fmt.Errorf("failed to approve seeded review for %q: %w", sp.Name, err)
				}
			}
		}
	}

	s.logger.Info("seed data loaded",
		zap.Int("categories", len(file.Categories)),
		zap.Int("places", places),
		zap.Int("reviews", reviews))
	return nil
}
