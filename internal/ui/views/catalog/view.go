package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "microhub/internal/modules/catalog/dto"
	"microhub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context, category, level string) ([]catalogdto.CourseSummary, error)
	Filters(ctx context.Context) (catalogdto.FiltersOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CoursesLoadedMsg struct {
	Courses []catalogdto.CourseSummary
	Err     error
}

type FiltersLoadedMsg struct {
	Filters catalogdto.FiltersOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	course catalogdto.CourseSummary
}

func (i courseItem) Title() string { return i.course.Title }
func (i courseItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.course.Level, i.course.Duration, i.course.Price)
}
func (i courseItem) FilterValue() string { return i.course.Title + " " + i.course.Category }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	list       list.Model
	preview    viewport.Model
	spinner    spinner.Model
	categories []string
	levels     []string
	category   int
	level      int
	loading    bool
	width      int
	height     int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Choose Your Learning Path"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:       port,
		list:       l,
		preview:    vp,
		spinner:    sp,
		categories: []string{"All"},
		levels:     []string{"All"},
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadFiltersCmd(), m.loadCoursesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case FiltersLoadedMsg:
		if msg.Err == nil {
			m.categories = msg.Filters.Categories
			m.levels = msg.Filters.Levels
			m.category, m.level = 0, 0
		}

	case CoursesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Courses: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Courses))
		for i, c := range msg.Courses {
			items[i] = courseItem{course: c}
		}
		m.list.Title = m.filterTitle()
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Select(0)
		m.refreshPreview()
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "c":
				m.category = (m.category + 1) % len(m.categories)
				return m, m.loadCoursesCmd()
			case "l":
				m.level = (m.level + 1) % len(m.levels)
				return m, m.loadCoursesCmd()
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.refreshPreview()
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading courses…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Selected() (catalogdto.CourseSummary, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course, true
	}
	return catalogdto.CourseSummary{}, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload refetches the list, keeping the current filters.
func (m Model) Reload() tea.Cmd { return m.loadCoursesCmd() }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) currentCategory() string { return m.categories[m.category%len(m.categories)] }

func (m Model) currentLevel() string { return m.levels[m.level%len(m.levels)] }

func (m Model) filterTitle() string {
	return fmt.Sprintf("Courses · %s · %s", m.currentCategory(), m.currentLevel())
}

func (m *Model) refreshPreview() {
	m.preview.SetContent(m.renderDetail())
	m.preview.GotoTop()
}

func (m Model) renderDetail() string {
	c, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No courses match these filters")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(c.Title) + "\n")
	price := theme.Badge.Render(c.Price)
	if c.IsFree {
		price = theme.Free.Render("FREE")
	}
	sb.WriteString(price)
	if c.Popular {
		sb.WriteString(" " + theme.Hot.Render("Most Popular"))
	}
	sb.WriteString("\n\n" + c.Description + "\n\n")
	sb.WriteString(theme.Muted.Render("category: ") + c.Category + "\n")
	sb.WriteString(theme.Muted.Render("level:    ") + c.Level + "\n")
	sb.WriteString(theme.Muted.Render("duration: ") + c.Duration + "\n")
	sb.WriteString(fmt.Sprintf("%s%d lessons\n", theme.Muted.Render("lessons:  "), c.TotalLessons))
	sb.WriteString(fmt.Sprintf("%s%.1f ★  %d students\n", theme.Muted.Render("rating:   "), c.Rating, c.Students))
	sb.WriteString(fmt.Sprintf("%s%s %d%%\n", theme.Muted.Render("complete: "), theme.ProgressBar(c.CompletionRate, 20), c.CompletionRate))
	if len(c.Features) > 0 {
		sb.WriteString("\n" + theme.Title.Render("What you'll learn") + "\n")
		for _, f := range c.Features {
			sb.WriteString("  • " + f + "\n")
		}
	}
	if !c.HasLessons() {
		sb.WriteString("\n" + theme.Warn.Render("Full lessons coming soon"))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("enter: open course  c: category  l: level  /: search"))
	return sb.String()
}

func (m Model) loadCoursesCmd() tea.Cmd {
	category, level := m.currentCategory(), m.currentLevel()
	return func() tea.Msg {
		courses, err := m.port.List(context.Background(), category, level)
		return CoursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (m Model) loadFiltersCmd() tea.Cmd {
	return func() tea.Msg {
		filters, err := m.port.Filters(context.Background())
		return FiltersLoadedMsg{Filters: filters, Err: err}
	}
}
