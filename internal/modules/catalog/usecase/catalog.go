package usecase

import (
	"context"

	"microhub/internal/modules/catalog/domain"
	"microhub/internal/modules/catalog/dto"
	catalogin "microhub/internal/modules/catalog/port/in"
	"microhub/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.CourseSummary, error) {
	courses, err := i.svc.List(ctx, domain.Filter{Category: input.Category, Level: input.Level})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, toSummary(c))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.CourseDetail, error) {
	course, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.CourseDetail{}, err
	}
	detail := dto.CourseDetail{CourseSummary: toSummary(course)}
	if full, ok := course.(domain.FullCourse); ok {
		for _, l := range full.Lessons {
			detail.Lessons = append(detail.Lessons, dto.LessonOutput{Number: l.Number, Title: l.Title, Content: l.Content})
		}
		for _, q := range full.Quiz {
			detail.Quiz = append(detail.Quiz, dto.QuestionOutput{
				ID:       q.ID,
				Prompt:   q.Prompt,
				Type:     string(q.Type),
				Choices:  q.Choices(),
				Expected: q.Expected,
			})
		}
	}
	return detail, nil
}

func (i *Interactor) Filters(ctx context.Context) (dto.FiltersOutput, error) {
	reg, err := i.svc.Registry(ctx)
	if err != nil {
		return dto.FiltersOutput{}, err
	}
	return dto.FiltersOutput{
		Categories: append([]string{domain.FilterAll}, reg.Categories...),
		Levels:     append([]string{domain.FilterAll}, reg.Levels...),
	}, nil
}

func toSummary(c domain.Course) dto.CourseSummary {
	m := c.Info()
	kind := dto.KindStub
	if _, ok := c.(domain.FullCourse); ok {
		kind = dto.KindFull
	}
	return dto.CourseSummary{
		ID:             m.ID,
		Kind:           kind,
		Title:          m.Title,
		Description:    m.Description,
		Category:       m.Category,
		Level:          m.Level,
		Duration:       m.Duration,
		TotalLessons:   m.TotalLessons,
		Students:       m.Students,
		Rating:         m.Rating,
		CompletionRate: m.CompletionRate,
		IsFree:         m.IsFree,
		Popular:        m.Popular,
		Price:          m.Price,
		Features:       m.Features,
	}
}
