package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"microhub/internal/modules/course/domain"
	courseout "microhub/internal/modules/course/port/out"
	"microhub/internal/platform/markdown"
	"microhub/internal/platform/slug"
)

const submissionSchemaVersion = 1

type submissionMeta struct {
	SchemaVersion int                `yaml:"schema_version"`
	ID            string             `yaml:"id"`
	CourseID      string             `yaml:"course_id"`
	CourseTitle   string             `yaml:"course_title"`
	Name          string             `yaml:"name"`
	Phone         string             `yaml:"phone"`
	SubmittedAt   string             `yaml:"submitted_at"`
	Link          string             `yaml:"link"`
	Answers       []submissionAnswer `yaml:"answers"`
}

type submissionAnswer struct {
	Question int    `yaml:"question"`
	Prompt   string `yaml:"prompt"`
	Answer   string `yaml:"answer"`
}

// VaultSubmissionStore archives quiz submissions as markdown notes under
// <home>/submissions/YYYY/MM/DD.
type VaultSubmissionStore struct {
	homePath string
}

func NewVaultSubmissionStore(homePath string) courseout.SubmissionStore {
	return &VaultSubmissionStore{homePath: homePath}
}

func (s *VaultSubmissionStore) Save(_ context.Context, submission domain.Submission) (string, error) {
	date := submission.SubmittedAt
	dir := filepath.Join(s.homePath, "submissions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create submission dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(submission.CourseTitle))
	path := filepath.Join(dir, name)

	meta := submissionMeta{
		SchemaVersion: submissionSchemaVersion,
		ID:            submission.ID,
		CourseID:      submission.CourseID,
		CourseTitle:   submission.CourseTitle,
		Name:          strings.TrimSpace(submission.Name),
		Phone:         strings.TrimSpace(submission.Phone),
		SubmittedAt:   date.Format(time.RFC3339),
		Link:          submission.Link,
	}
	for _, a := range submission.Answers {
		meta.Answers = append(meta.Answers, submissionAnswer{Question: a.QuestionID, Prompt: a.Question, Answer: strings.TrimSpace(a.Answer)})
	}
	body := fmt.Sprintf("# Quiz submission: %s\n\n%s\n\n## Message\n\n%s\n", submission.CourseTitle, submission.Results(), submission.Message)
	rendered, err := markdown.Note{Meta: meta, Body: body}.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write submission note: %w", err)
	}
	return path, nil
}

func (s *VaultSubmissionStore) Load(_ context.Context, path string) (domain.Submission, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("read submission note: %w", err)
	}
	meta := submissionMeta{}
	body, err := markdown.Parse(string(payload), &meta)
	if err != nil {
		return domain.Submission{}, err
	}
	submittedAt, err := time.Parse(time.RFC3339, meta.SubmittedAt)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("parse submitted_at: %w", err)
	}
	submission := domain.Submission{
		ID:          meta.ID,
		CourseID:    meta.CourseID,
		CourseTitle: meta.CourseTitle,
		Name:        meta.Name,
		Phone:       meta.Phone,
		Link:        meta.Link,
		SubmittedAt: submittedAt,
	}
	if _, msg, ok := strings.Cut(body, "## Message\n\n"); ok {
		submission.Message = strings.TrimSuffix(msg, "\n")
	}
	for _, a := range meta.Answers {
		submission.Answers = append(submission.Answers, domain.Answer{QuestionID: a.Question, Question: a.Prompt, Answer: a.Answer})
	}
	return submission, nil
}
