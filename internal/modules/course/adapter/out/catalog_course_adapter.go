package out

import (
	"context"

	catalogin "microhub/internal/modules/catalog/port/in"
	"microhub/internal/modules/course/domain"
	courseout "microhub/internal/modules/course/port/out"
)

type CatalogCourseAdapter struct {
	catalog catalogin.Usecase
}

func NewCatalogCourseAdapter(catalog catalogin.Usecase) courseout.CatalogPort {
	return &CatalogCourseAdapter{catalog: catalog}
}

func (a *CatalogCourseAdapter) Course(ctx context.Context, courseID string) (domain.Course, error) {
	detail, err := a.catalog.Get(ctx, courseID)
	if err != nil {
		return domain.Course{}, err
	}
	course := domain.Course{
		ID:           detail.ID,
		Title:        detail.Title,
		IsFree:       detail.IsFree,
		HasLessons:   detail.HasLessons(),
		TotalLessons: detail.TotalLessons,
	}
	for _, lesson := range detail.Lessons {
		course.Lessons = append(course.Lessons, domain.Lesson{Number: lesson.Number, Title: lesson.Title, Content: lesson.Content})
	}
	for _, q := range detail.Quiz {
		course.Quiz = append(course.Quiz, domain.Question{ID: q.ID, Prompt: q.Prompt, Type: q.Type, Choices: q.Choices})
	}
	return course, nil
}
