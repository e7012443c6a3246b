package services

import (
	"context"
	"log/slog"

	"github.com/haseab/retrace-frontend-sub001/internal/models"
)

// FeedbackRepository defines the interface for feedback persistence
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	List(ctx context.Context, limit, offset int) ([]*models.Feedback, error)
}

// FeedbackService stores feedback reports and notifies the operator
type FeedbackService struct {
	repo   FeedbackRepository
	email  EmailService // nil when notifications are not configured
	logger *slog.Logger
}

func NewFeedbackService(repo FeedbackRepository, email EmailService, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		repo:   repo,
		email:  email,
		logger: logger,
	}
}

// Submit stores a feedback report. A notification failure is logged and
// swallowed; the report is already persisted and the desktop app should not
// see an error for it.
func (s *FeedbackService) Submit(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	created, err := s.repo.Create(ctx, fb)
	if err != nil {
		return nil, err
	}

	if s.email != nil {
		if err := s.email.SendFeedbackNotification(ctx, created); err != nil {
			s.logger.Warn("feedback stored but notification failed",
				slog.String("feedback_id", created.ID),
				slog.Any("error", err))
		}
	}

	return created, nil
}

// List returns recent feedback reports for the admin dashboard
func (s *FeedbackService) List(ctx context.Context, limit, offset int) ([]*models.Feedback, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
