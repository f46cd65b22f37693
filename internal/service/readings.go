package service

import (
	"context"

	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/repository"
)

const (
	defaultReadingsLimit = 100
	maxReadingsLimit     = 5000
)

type ReadingsService struct {
	repo repository.ReadingRepo
}

func NewReadingsService(repo repository.ReadingRepo) *ReadingsService {
	return &ReadingsService{repo: repo}
}

// Recent returns stored readings of a mode, oldest first. A non-positive
// limit means the default page size.
func (s *ReadingsService) Recent(ctx context.Context, mode string, limit int) ([]models.Reading, error) {
	switch {
	case limit <= 0:
		limit = defaultReadingsLimit
	case limit > maxReadingsLimit:
		limit = maxReadingsLimit
	}
	out, err := s.repo.Recent(ctx, mode, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Reading{}
	}
	return out, nil
}
