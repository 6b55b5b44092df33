package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/embedding"
	"hiring-backend/internal/shared/telemetry"
)

// Service manages jobs. The description is embedded once at creation so
// candidate scoring never re-embeds the job side.
type Service struct {
	Repo     Repo
	Embedder embedding.Embedder
	Audit    *audit.Recorder
}

// Create embeds the description and stores the job. An unavailable embedding
// gateway fails creation; unlike candidates there is nothing useful to defer.
func (s *Service) Create(ctx context.Context, title, description string) (Job, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	vec, err := s.Embedder.Embed(ctx, description)
	if err != nil {
		return Job{}, fmt.Errorf("embed job description: %w", err)
	}

	job := Job{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Embedding:   vec,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, fmt.Errorf("store job: %w", err)
	}

	s.Audit.Record(ctx, "", job.ID, "job_created", map[string]any{
		"title": job.Title,
	})
	telemetry.Info("jobs.created", map[string]any{
		"job_id":    job.ID,
		"title":     job.Title,
		"dimension": len(job.Embedding),
	})
	return job, nil
}

// Get returns a job by id.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all jobs.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	return s.Repo.List(ctx)
}
