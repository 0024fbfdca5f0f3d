package markdown_test

import (
	"strings"
	"testing"

	"microhub/internal/platform/markdown"
)

type noteMeta struct {
	ID       string `yaml:"id"`
	CourseID string `yaml:"course_id"`
	Answers  int    `yaml:"answers"`
}

func TestNoteRenderAndParse(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.Note{
		Meta: noteMeta{ID: "abc", CourseID: "gmail-mastery", Answers: 3},
		Body: "# Quiz\n\nQ1: hello\nA: world\n",
	}.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nid: abc\n") {
		t.Fatalf("unexpected frontmatter: %q", rendered)
	}

	var meta noteMeta
	body, err := markdown.Parse(rendered, &meta)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.CourseID != "gmail-mastery" || meta.Answers != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if body != "# Quiz\n\nQ1: hello\nA: world\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	body, err := markdown.Parse("plain text\n", &meta)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if body != "plain text\n" || meta.ID != "" {
		t.Fatalf("unexpected parse result: %q %+v", body, meta)
	}
}

func TestParseMissingClosingFence(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	if _, err := markdown.Parse("---\nid: x\nbody", &meta); err == nil {
		t.Fatalf("expected missing fence error")
	}
}
