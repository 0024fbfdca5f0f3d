package course

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	coursedto "microhub/internal/modules/course/dto"
	"microhub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Open(ctx context.Context, courseID string) (coursedto.CourseView, error)
	Lesson(ctx context.Context, courseID string, lesson int) (coursedto.LessonOutput, error)
	Complete(ctx context.Context, courseID string, lesson int) (coursedto.CompleteOutput, error)
	Redeem(ctx context.Context, courseID, code string) (coursedto.RedeemOutput, error)
	Quiz(ctx context.Context, courseID string) (coursedto.QuizOutput, error)
	Submit(ctx context.Context, courseID string, answers map[int]string, name, phone string) (coursedto.SubmitQuizOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// OpenedMsg bubbles up to the app model so it can switch to the Course tab.
type OpenedMsg struct {
	View coursedto.CourseView
	Err  error
}

type LessonMsg struct {
	Lesson coursedto.LessonOutput
	Err    error
}

type CompletedMsg struct {
	Out coursedto.CompleteOutput
	Err error
}

type RedeemedMsg struct {
	Out coursedto.RedeemOutput
	Err error
}

type QuizMsg struct {
	Quiz coursedto.QuizOutput
	Err  error
}

type SubmittedMsg struct {
	Out coursedto.SubmitQuizOutput
	Err error
}

// ─── mode ────────────────────────────────────────────────────────────────────

type mode int

const (
	modeIdle mode = iota
	modeOverview
	modeLesson
	modeCode
	modeVerifying
	modeQuiz
	modeSubmitting
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	mode     mode
	view     coursedto.CourseView
	cursor   int
	lesson   coursedto.LessonOutput
	reader   viewport.Model
	renderer *glamour.TermRenderer
	spinner  spinner.Model
	code     textinput.Model
	cancel   context.CancelFunc
	quiz     coursedto.QuizOutput
	inputs   []textinput.Model
	focus    int
	flash    string
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	code := textinput.New()
	code.Placeholder = "e.g. 2024-FREE-MHUB"
	code.CharLimit = 64

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		reader:   viewport.New(0, 0),
		renderer: r,
		spinner:  sp,
		code:     code,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.mode == modeLesson {
			m.reader.SetContent(m.renderLesson())
		}
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.setView(msg.View)
		m.mode = modeOverview
		m.flash = ""
		return m, nil

	case LessonMsg:
		if msg.Err != nil {
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.lesson = msg.Lesson
		m.mode = modeLesson
		m.reader.SetContent(m.renderLesson())
		m.reader.GotoTop()
		return m, nil

	case CompletedMsg:
		if msg.Err != nil {
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.setView(msg.Out.View)
		m.mode = modeOverview
		m.flash = theme.Success.Render(msg.Out.Notice) + warning(msg.Out.Warning)
		if msg.Out.View.Stage == "quiz-offered" {
			m.flash += "  " + theme.Hot.Render("All lessons done! Press t to take the quiz.")
		}
		return m, nil

	case RedeemedMsg:
		m.cancel = nil
		if errors.Is(msg.Err, context.Canceled) {
			m.mode = modeOverview
			m.flash = theme.Muted.Render("verification cancelled")
			return m, nil
		}
		if msg.Err != nil || !msg.Out.Accepted {
			m.mode = modeCode
			if msg.Err != nil {
				m.flash = theme.Danger.Render(msg.Err.Error())
			} else {
				m.flash = theme.Danger.Render(msg.Out.Message)
			}
			cmd := m.code.Focus()
			return m, cmd
		}
		m.code.Blur()
		m.code.SetValue("")
		m.setView(msg.Out.View)
		m.mode = modeOverview
		m.flash = theme.Success.Render(msg.Out.Message) + warning(msg.Out.Warning)
		return m, nil

	case QuizMsg:
		if msg.Err != nil {
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.startQuiz(msg.Quiz)
		cmd := m.inputs[0].Focus()
		return m, cmd

	case SubmittedMsg:
		m.cancel = nil
		if errors.Is(msg.Err, context.Canceled) {
			m.mode = modeQuiz
			m.flash = theme.Muted.Render("submission cancelled, your answers are kept")
			cmd := m.inputs[m.focus].Focus()
			return m, cmd
		}
		if msg.Err != nil {
			m.mode = modeQuiz
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.quiz = coursedto.QuizOutput{}
		m.inputs = nil
		m.setView(msg.Out.View)
		m.mode = modeOverview
		m.flash = theme.Success.Render(msg.Out.Notice) + "\n" + theme.Muted.Render(msg.Out.Link) + warning(msg.Out.Warning)
		return m, nil

	case spinner.TickMsg:
		if m.mode == modeVerifying || m.mode == modeSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeOverview:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.view.Lessons)-1 {
				m.cursor++
			}
		case "enter":
			if n, ok := m.selectedLesson(); ok {
				return m, m.lessonCmd(n)
			}
		case "c":
			if n, ok := m.selectedLesson(); ok {
				return m, m.completeCmd(n)
			}
		case "a":
			if m.view.Stage == "locked" {
				cmd := m.EnterCode()
				return m, cmd
			}
		case "t":
			return m, m.StartQuiz()
		}
		return m, nil

	case modeLesson:
		switch msg.String() {
		case "esc", "backspace":
			m.mode = modeOverview
			return m, nil
		case "c":
			return m, m.completeCmd(m.lesson.Number)
		}
		var cmd tea.Cmd
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd

	case modeCode:
		switch msg.String() {
		case "esc":
			m.code.Blur()
			m.mode = modeOverview
			return m, nil
		case "enter":
			cmd := m.RedeemCode(m.code.Value())
			return m, cmd
		}
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd

	case modeVerifying, modeSubmitting:
		if msg.String() == "esc" && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case modeQuiz:
		return m.handleQuizKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.mode == modeIdle {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Open a course from the Catalog tab (enter)"))
	}
	header := m.renderHeader()
	var body string
	switch m.mode {
	case modeLesson:
		body = m.reader.View() + "\n" + theme.Muted.Render(fmt.Sprintf("%.0f%%  c: mark complete  esc: back", m.reader.ScrollPercent()*100))
	case modeCode:
		body = theme.Title.Render("Enter Access Code") + "\n\n" + m.code.View() + "\n\n" +
			theme.Muted.Render("enter: verify  esc: back")
	case modeVerifying:
		body = m.spinner.View() + " Verifying access code…  " + theme.Muted.Render("esc: cancel")
	case modeQuiz:
		body = m.renderQuiz()
	case modeSubmitting:
		body = m.spinner.View() + " Submitting quiz…  " + theme.Muted.Render("esc: cancel")
	default:
		body = m.renderOverview()
	}
	out := lipgloss.JoinVertical(lipgloss.Left, header, body)
	if m.flash != "" {
		out += "\n\n" + m.flash
	}
	return out
}

// Open loads a course by id and returns the command that produces OpenedMsg.
func (m Model) Open(courseID string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.port.Open(context.Background(), courseID)
		return OpenedMsg{View: view, Err: err}
	}
}

func (m Model) CourseID() string { return m.view.CourseID }

func (m Model) IsFree() bool { return m.view.IsFree }

// Busy reports whether the view holds keyboard focus in a text field.
func (m Model) Busy() bool {
	return m.mode == modeCode || m.mode == modeQuiz || m.mode == modeVerifying || m.mode == modeSubmitting
}

func (m *Model) EnterCode() tea.Cmd {
	if m.view.CourseID == "" {
		return nil
	}
	m.mode = modeCode
	m.flash = ""
	return m.code.Focus()
}

// RedeemCode verifies code against the open course. The wait can be
// abandoned with esc, which cancels the request context.
func (m *Model) RedeemCode(code string) tea.Cmd {
	if m.view.CourseID == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mode = modeVerifying
	m.flash = ""
	courseID := m.view.CourseID
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		defer cancel()
		out, err := port.Redeem(ctx, courseID, code)
		return RedeemedMsg{Out: out, Err: err}
	})
}

func (m Model) StartQuiz() tea.Cmd {
	if m.view.CourseID == "" {
		return nil
	}
	courseID := m.view.CourseID
	return func() tea.Msg {
		quiz, err := m.port.Quiz(context.Background(), courseID)
		return QuizMsg{Quiz: quiz, Err: err}
	}
}

// ─── quiz ────────────────────────────────────────────────────────────────────

func (m *Model) startQuiz(quiz coursedto.QuizOutput) {
	m.quiz = quiz
	m.view = quiz.View
	m.mode = modeQuiz
	m.flash = ""
	m.focus = 0
	m.inputs = make([]textinput.Model, len(quiz.Questions)+2)
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 500
		m.inputs[i] = ti
	}
	for i, q := range quiz.Questions {
		if len(q.Choices) > 0 {
			m.inputs[i].Placeholder = fmt.Sprintf("1-%d or your answer", len(q.Choices))
		} else {
			m.inputs[i].Placeholder = "your answer"
		}
	}
	m.inputs[len(quiz.Questions)].Placeholder = "Full name"
	m.inputs[len(quiz.Questions)+1].Placeholder = "Phone number"
}

func (m Model) handleQuizKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quiz = coursedto.QuizOutput{}
		m.inputs = nil
		m.mode = modeOverview
		m.flash = theme.Muted.Render("quiz discarded")
		return m, nil
	case "tab", "down":
		cmd := m.moveFocus(1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.moveFocus(-1)
		return m, cmd
	case "enter":
		if m.focus < len(m.inputs)-1 {
			cmd := m.moveFocus(1)
			return m, cmd
		}
		return m.submitQuiz()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.syncDraft()
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) syncDraft() {
	if m.quiz.Draft == nil {
		return
	}
	for i, q := range m.quiz.Questions {
		_ = m.quiz.Draft.Answer(q.ID, AnswerValue(q, m.inputs[i].Value()))
	}
}

func (m Model) submitQuiz() (Model, tea.Cmd) {
	m.syncDraft()
	if m.quiz.Draft == nil {
		return m, nil
	}
	if missing := m.quiz.Draft.Unanswered(); len(missing) > 0 {
		m.flash = theme.Danger.Render(fmt.Sprintf("Please answer all questions (%d remaining)", len(missing)))
		return m, nil
	}
	name := m.inputs[len(m.quiz.Questions)].Value()
	phone := m.inputs[len(m.quiz.Questions)+1].Value()
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		m.flash = theme.Danger.Render("Please provide your name and phone number")
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mode = modeSubmitting
	m.inputs[m.focus].Blur()
	courseID := m.view.CourseID
	answers := m.quiz.Draft.Answers()
	port := m.port
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		defer cancel()
		out, err := port.Submit(ctx, courseID, answers, name, phone)
		return SubmittedMsg{Out: out, Err: err}
	})
}

// AnswerValue maps a numeric pick onto the matching choice text.
func AnswerValue(q coursedto.QuestionOutput, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return raw
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setView(view coursedto.CourseView) {
	m.view = view
	if m.cursor >= len(view.Lessons) {
		m.cursor = 0
	}
	for i, lesson := range view.Lessons {
		if lesson.State == "unlocked" {
			m.cursor = i
			break
		}
	}
}

func (m Model) selectedLesson() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Lessons) {
		return 0, false
	}
	return m.view.Lessons[m.cursor].Number, true
}

func (m *Model) resize() {
	m.reader.Width = m.width
	m.reader.Height = m.height - 6
	if m.reader.Height < 1 {
		m.reader.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderHeader() string {
	v := m.view
	parts := []string{theme.Title.Render(v.Title)}
	if v.IsFree {
		parts = append(parts, theme.Free.Render("FREE"))
	}
	parts = append(parts, theme.Badge.Render(v.Stage))
	if v.Unlocked && v.HasLessons {
		parts = append(parts, theme.ProgressBar(v.Percent, 20), theme.Muted.Render(fmt.Sprintf("%d/%d · %d%%", v.Completed, v.Total, v.Percent)))
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderOverview() string {
	v := m.view
	var sb strings.Builder
	if v.Notice != "" {
		sb.WriteString(theme.Warn.Render(v.Notice) + "\n\n")
	}
	if v.Stage == "locked" {
		sb.WriteString(theme.Muted.Render("a: enter access code  :pay:start full  to buy one"))
		return sb.String()
	}
	for i, lesson := range v.Lessons {
		line := fmt.Sprintf("%s  Lesson %d: %s", theme.Lesson(lesson.State), lesson.Number, lesson.Title)
		if lesson.State == "locked" {
			line = theme.Muted.Render(line)
		}
		if i == m.cursor {
			line = theme.Hot.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	if v.AccessCode != "" {
		sb.WriteString("\n" + theme.Muted.Render("access code: "+v.AccessCode) + "\n")
	}
	switch v.Stage {
	case "quiz-offered":
		sb.WriteString("\n" + theme.Hot.Render("Final quiz available. t: take quiz"))
	case "quiz-submitted":
		sb.WriteString("\n" + theme.Success.Render("Quiz submitted. You'll be contacted about your certificate."))
	default:
		if len(v.Lessons) > 0 {
			sb.WriteString("\n" + theme.Muted.Render("↑/↓: select  enter: read  c: complete"))
		}
	}
	return sb.String()
}

func (m Model) renderLesson() string {
	content := fmt.Sprintf("# Lesson %d: %s\n\n%s", m.lesson.Number, m.lesson.Title, m.lesson.Content)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) renderQuiz() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Final Quiz") + "\n\n")
	for i, q := range m.quiz.Questions {
		sb.WriteString(fmt.Sprintf("Q%d. %s\n", q.ID, q.Prompt))
		for j, choice := range q.Choices {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("   %d) %s", j+1, choice)) + "\n")
		}
		sb.WriteString("   " + m.inputs[i].View() + "\n\n")
	}
	sb.WriteString(theme.Title.Render("Your details") + "\n")
	sb.WriteString("   " + m.inputs[len(m.quiz.Questions)].View() + "\n")
	sb.WriteString("   " + m.inputs[len(m.quiz.Questions)+1].View() + "\n\n")
	remaining := 0
	if m.quiz.Draft != nil {
		remaining = len(m.quiz.Draft.Unanswered())
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d unanswered  tab: next  enter on phone: submit  esc: discard", remaining)))

	vp := viewport.New(m.width, max(m.height-4, 1))
	vp.SetContent(sb.String())
	lines := 0
	for i := 0; i < m.focus && i < len(m.quiz.Questions); i++ {
		lines += 3 + len(m.quiz.Questions[i].Choices)
	}
	vp.SetYOffset(lines)
	return vp.View()
}

func (m Model) lessonCmd(n int) tea.Cmd {
	courseID := m.view.CourseID
	return func() tea.Msg {
		lesson, err := m.port.Lesson(context.Background(), courseID, n)
		return LessonMsg{Lesson: lesson, Err: err}
	}
}

func (m Model) completeCmd(n int) tea.Cmd {
	courseID := m.view.CourseID
	return func() tea.Msg {
		out, err := m.port.Complete(context.Background(), courseID, n)
		return CompletedMsg{Out: out, Err: err}
	}
}

func warning(w string) string {
	if w == "" {
		return ""
	}
	return "\n" + theme.Warn.Render(w)
}
