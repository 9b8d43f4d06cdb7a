package services

import (
	"context"
	"strings"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

type CreateJobInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	IsHourly    bool    `json:"is_hourly"`
}

func (s *Service) CreateJob(ctx context.Context, p Principal, in CreateJobInput) (*models.Job, error) {
	if err := requireRole(p, models.RoleClient); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.Budget <= 0 {
		return nil, apperr.Validation("budget must be positive")
	}

	job := models.Job{
		ClientID:    p.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Budget:      in.Budget,
		IsHourly:    in.IsHourly,
		Status:      models.JobStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Service) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).Preload("Client").First(&job, jobID).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	return &job, nil
}

// ListJobs returns open jobs newest first, paginated.
func (s *Service) ListJobs(ctx context.Context, page, limit int) ([]models.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := db.Where("status = ?", models.JobStatusOpen).
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}
