package service

import (
	"context"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/normalize"
	"github.com/collegeconnect/suggester-backend/internal/repository"
)

// CatalogService serves the reference dictionaries students filter by:
// regions, courses and colleges.
type CatalogService interface {
	Regions(ctx context.Context) ([]*model.Region, error)
	Courses(ctx context.Context) ([]*model.CourseWithShortCode, error)
	Colleges(ctx context.Context) ([]*model.College, error)
	College(ctx context.Context, id int) (*model.College, error)
}

type catalogService struct {
	regionRepo  repository.RegionRepository
	courseRepo  repository.CourseRepository
	collegeRepo repository.CollegeRepository
}

func NewCatalogService(
	regionRepo repository.RegionRepository,
	courseRepo repository.CourseRepository,
	collegeRepo repository.CollegeRepository,
) CatalogService {
	return &catalogService{
		regionRepo:  regionRepo,
		courseRepo:  courseRepo,
		collegeRepo: collegeRepo,
	}
}

// Regions lists all regions with report-style prefixes (Dist-, Tal-)
// stripped from the display names.
func (s *catalogService) Regions(ctx context.Context) ([]*model.Region, error) {
	regions, err := s.regionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range regions {
		r.Name = normalize.RegionName(r.Name)
	}
	return regions, nil
}

// Courses lists all courses annotated with their canonical short code
// (CSE, IT, ME, ...).
func (s *catalogService) Courses(ctx context.Context) ([]*model.CourseWithShortCode, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.CourseWithShortCode, 0, len(courses))
	for _, c := range courses {
		out = append(out, &model.CourseWithShortCode{
			Course:    *c,
			ShortCode: normalize.CourseCode(c.Name),
		})
	}
	return out, nil
}

func (s *catalogService) Colleges(ctx context.Context) ([]*model.College, error) {
	return s.collegeRepo.GetAll(ctx)
}

func (s *catalogService) College(ctx context.Context, id int) (*model.College, error) {
	return s.collegeRepo.GetByID(ctx, id)
}
