package demo

import "context"

// Service produces demo profiles, optionally persisting them.
type Service struct {
	gen  *Generator
	repo Repository
}

// NewService builds a demo profile service.
func NewService(gen *Generator, repo Repository) *Service {
	return &Service{gen: gen, repo: repo}
}

// Generate creates and stores a profile.
func (s *Service) Generate(ctx context.Context) (Profile, error) {
	p, err := s.gen.Profile(ctx)
	if err != nil {
		return Profile{}, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Preview creates a profile without storing it.
func (s *Service) Preview(ctx context.Context) (Profile, error) {
	return s.gen.Profile(ctx)
}
