package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	outreachdto "microhub/internal/modules/outreach/dto"
	progressdto "microhub/internal/modules/progress/dto"
	"microhub/internal/ui/components"
	"microhub/internal/ui/theme"
	catalogview "microhub/internal/ui/views/catalog"
	courseview "microhub/internal/ui/views/course"
	pricingview "microhub/internal/ui/views/pricing"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type progressPort interface {
	Reset(ctx context.Context, courseID string, isFree bool) (progressdto.MutationOutput, error)
}

type contactPort interface {
	Contact(ctx context.Context) outreachdto.ContactOutput
}

// ─── routing ─────────────────────────────────────────────────────────────────

type RouteKind int

const (
	RouteCatalog RouteKind = iota
	RouteCourseDetail
	RoutePricing
	routeCount
)

var routeLabels = [routeCount]string{"Catalog", "Course", "Pricing"}

// Route is the screen being shown. CourseID is set for RouteCourseDetail.
type Route struct {
	Kind     RouteKind
	CourseID string
}

// ─── async messages ──────────────────────────────────────────────────────────

type resetMsg struct {
	courseID string
	out      progressdto.MutationOutput
	err      error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Code    key.Binding
	Quiz    key.Binding
	Back    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open / view lesson")),
		Code:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "enter access code")),
		Quiz:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "take quiz")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Back},
		{k.Code, k.Quiz},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns routing, the help overlay and
// the command palette; sub-views do the rendering.
type Model struct {
	progress progressPort
	contact  contactPort

	catalogView catalogview.Model
	courseView  courseview.Model
	pricingView pricingview.Model

	route    Route
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(
	catalog catalogview.Port,
	course courseview.Port,
	pricing pricingview.Port,
	progress progressPort,
	contact contactPort,
) Model {
	return Model{
		progress:    progress,
		contact:     contact,
		catalogView: catalogview.New(catalog),
		courseView:  courseview.New(course),
		pricingView: pricingview.New(pricing),
		route:       Route{Kind: RouteCatalog},
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.catalogView.Init()
}

func (m Model) Route() Route { return m.route }

func (m Model) Status() string { return m.status }

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Catalog data arrives asynchronously and must reach the catalog view
	// regardless of which screen is showing.
	case catalogview.CoursesLoadedMsg, catalogview.FiltersLoadedMsg:
		var cmd tea.Cmd
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd

	case courseview.OpenedMsg:
		if msg.Err != nil {
			m.status = "open: " + msg.Err.Error()
		} else {
			m.route = Route{Kind: RouteCourseDetail, CourseID: msg.View.CourseID}
			m.status = fmt.Sprintf("%s [%s]", msg.View.Title, msg.View.Stage)
		}
		var cmd tea.Cmd
		m.courseView, cmd = m.courseView.Update(msg)
		return m, cmd

	case courseview.LessonMsg, courseview.CompletedMsg, courseview.RedeemedMsg,
		courseview.QuizMsg, courseview.SubmittedMsg:
		var cmd tea.Cmd
		m.courseView, cmd = m.courseView.Update(msg)
		return m, tea.Batch(cmd, m.catalogView.Reload())

	case pricingview.StartedMsg:
		var cmd tea.Cmd
		m.pricingView, cmd = m.pricingView.Update(msg)
		return m, cmd

	case pricingview.ConfirmedMsg:
		if msg.Err == nil {
			m.status = "access code issued: " + msg.Out.Code
		}
		var cmd tea.Cmd
		m.pricingView, cmd = m.pricingView.Update(msg)
		return m, cmd

	case resetMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "progress reset: " + msg.courseID
		if msg.out.Warning != "" {
			m.status += " (" + msg.out.Warning + ")"
		}
		return m, tea.Batch(m.courseView.Open(msg.courseID), m.catalogView.Reload())

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.route = m.routeFor((m.route.Kind + 1) % routeCount)
			return m, nil
		case "shift+tab":
			m.route = m.routeFor((m.route.Kind + routeCount - 1) % routeCount)
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "enter":
			if m.route.Kind == RouteCatalog {
				if c, ok := m.catalogView.Selected(); ok {
					m.status = "opening " + c.Title
					return m, m.courseView.Open(c.ID)
				}
				return m, nil
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.route.Kind {
	case RouteCatalog:
		m.catalogView, tabCmd = m.catalogView.Update(msg)
	case RouteCourseDetail:
		m.courseView, tabCmd = m.courseView.Update(msg)
	case RoutePricing:
		m.pricingView, tabCmd = m.pricingView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.route.Kind {
	case RouteCatalog:
		return m.catalogView.View()
	case RouteCourseDetail:
		if m.route.CourseID == "" {
			return theme.Muted.Render("No course open. Pick one from the catalog and press enter.")
		}
		return m.courseView.View()
	case RoutePricing:
		return m.pricingView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, routeCount)
	for i := RouteKind(0); i < routeCount; i++ {
		label := routeLabels[i]
		if i == RouteCourseDetail && m.route.CourseID != "" {
			label += ": " + m.route.CourseID
		}
		if i == m.route.Kind {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "microhub  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))

	switch parts[0] {
	case "open":
		if rest == "" {
			m.status = "usage: open <course-id>"
			return m, nil
		}
		return m, m.courseView.Open(rest)

	case "code":
		if m.courseView.CourseID() == "" {
			m.status = "open a course first"
			return m, nil
		}
		m.route = m.routeFor(RouteCourseDetail)
		if rest == "" {
			cmd := m.courseView.EnterCode()
			return m, cmd
		}
		cmd := m.courseView.RedeemCode(rest)
		return m, cmd

	case "quiz":
		if m.courseView.CourseID() == "" {
			m.status = "open a course first"
			return m, nil
		}
		m.route = m.routeFor(RouteCourseDetail)
		return m, m.courseView.StartQuiz()

	case "reset":
		id := m.courseView.CourseID()
		if id == "" {
			m.status = "open a course first"
			return m, nil
		}
		return m, m.resetCmd(id, m.courseView.IsFree())

	case "pay:start":
		if rest == "" {
			m.status = "usage: pay:start <free|full|premium>"
			return m, nil
		}
		m.route = m.routeFor(RoutePricing)
		return m, m.pricingView.Start(rest)

	case "pay:confirm":
		m.route = m.routeFor(RoutePricing)
		cmd := m.pricingView.Confirm(rest)
		return m, cmd

	case "contact":
		if m.contact == nil {
			m.status = "contact details unavailable"
			return m, nil
		}
		c := m.contact.Contact(context.Background())
		m.status = fmt.Sprintf("WhatsApp %s  %s", c.DisplayPhone, c.ChatLink)
		return m, nil

	case "catalog":
		m.route = m.routeFor(RouteCatalog)
		return m, nil

	case "pricing":
		m.route = m.routeFor(RoutePricing)
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) routeFor(kind RouteKind) Route {
	if kind == RouteCourseDetail {
		return Route{Kind: kind, CourseID: m.courseView.CourseID()}
	}
	return Route{Kind: kind}
}

// subViewCapturing reports whether the active screen has a text field or a
// list filter focused, in which case global keys yield to it.
func (m Model) subViewCapturing() bool {
	switch m.route.Kind {
	case RouteCatalog:
		return m.catalogView.Filtering()
	case RouteCourseDetail:
		return m.courseView.Busy()
	case RoutePricing:
		return m.pricingView.Busy()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.catalogView, _ = m.catalogView.Update(sz)
	m.courseView, _ = m.courseView.Update(sz)
	m.pricingView, _ = m.pricingView.Update(sz)
}

func (m Model) resetCmd(courseID string, isFree bool) tea.Cmd {
	progress := m.progress
	return func() tea.Msg {
		if progress == nil {
			return resetMsg{courseID: courseID, err: fmt.Errorf("progress store not configured")}
		}
		out, err := progress.Reset(context.Background(), courseID, isFree)
		return resetMsg{courseID: courseID, out: out, err: err}
	}
}
