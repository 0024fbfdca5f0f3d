package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	paymentdto "microhub/internal/modules/payment/dto"
	"microhub/internal/ui/theme"
)

type Port interface {
	Plans(ctx context.Context) []paymentdto.PlanOutput
	Start(ctx context.Context, plan string) (paymentdto.StartOutput, error)
	Confirm(ctx context.Context, plan, message string) (paymentdto.ConfirmOutput, error)
}

type StartedMsg struct {
	Out paymentdto.StartOutput
	Err error
}

// ConfirmedMsg bubbles up to the app model so the issued code can be shown
// in the status bar.
type ConfirmedMsg struct {
	Out paymentdto.ConfirmOutput
	Err error
}

type step int

const (
	stepChoose step = iota
	stepInstructions
	stepProcessing
	stepSuccess
)

type Model struct {
	port    Port
	plans   []paymentdto.PlanOutput
	cursor  int
	step    step
	started paymentdto.StartOutput
	result  paymentdto.ConfirmOutput
	message textarea.Model
	spinner spinner.Model
	cancel  context.CancelFunc
	flash   string
	width   int
	height  int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste your M-Pesa confirmation message here…"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, message: ta, spinner: sp}
	if port != nil {
		m.plans = port.Plans(context.Background())
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.message.SetWidth(max(m.width/2, 20))
		return m, nil

	case StartedMsg:
		if msg.Err != nil {
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.started = msg.Out
		m.step = stepInstructions
		m.flash = theme.Success.Render("Payment Instructions Sent") + "\n" +
			theme.Muted.Render("Admin has been notified. Complete your M-Pesa payment and paste the confirmation message.")
		m.message.Reset()
		cmd := m.message.Focus()
		return m, cmd

	case ConfirmedMsg:
		m.cancel = nil
		if errors.Is(msg.Err, context.Canceled) {
			m.step = stepInstructions
			m.flash = theme.Muted.Render("confirmation cancelled")
			return m, nil
		}
		if msg.Err != nil {
			m.step = stepInstructions
			m.flash = theme.Danger.Render(msg.Err.Error())
			return m, nil
		}
		m.result = msg.Out
		m.step = stepSuccess
		m.message.Blur()
		m.flash = theme.Success.Render("Payment Confirmed! Your access code is: " + msg.Out.Code)
		return m, nil

	case spinner.TickMsg:
		if m.step == stepProcessing {
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
	switch m.step {
	case stepChoose, stepSuccess:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plans)-1 {
				m.cursor++
			}
		case "enter":
			if plan, ok := m.Selected(); ok {
				m.step = stepChoose
				return m, m.Start(plan.Name)
			}
		}
		return m, nil

	case stepInstructions:
		switch msg.String() {
		case "esc":
			m.message.Blur()
			m.step = stepChoose
			m.flash = ""
			return m, nil
		case "ctrl+s":
			cmd := m.Confirm(m.message.Value())
			return m, cmd
		}
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(msg)
		return m, cmd

	case stepProcessing:
		if msg.String() == "esc" && m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

func (m Model) View() string {
	left := m.renderPlans()
	var right string
	switch m.step {
	case stepInstructions:
		right = m.renderInstructions() + "\n\n" + m.message.View() + "\n" +
			theme.Muted.Render("ctrl+s: confirm payment  esc: back")
	case stepProcessing:
		right = m.renderInstructions() + "\n\n" + m.spinner.View() + " Processing payment…  " + theme.Muted.Render("esc: cancel")
	case stepSuccess:
		right = m.renderSuccess()
	default:
		right = m.renderPlanDetail()
	}
	if m.flash != "" {
		right += "\n\n" + m.flash
	}
	leftW := max(m.width*4/10, 30)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftW).Render(left),
		theme.Pane.Width(max(m.width-leftW-4, 20)).Render(right),
	)
}

func (m Model) Selected() (paymentdto.PlanOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.plans) {
		return paymentdto.PlanOutput{}, false
	}
	return m.plans[m.cursor], true
}

// Busy reports whether the view holds keyboard focus in a text field.
func (m Model) Busy() bool { return m.step == stepInstructions || m.step == stepProcessing }

func (m Model) Start(plan string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Start(context.Background(), plan)
		return StartedMsg{Out: out, Err: err}
	}
}

// Confirm submits the pasted confirmation. Processing can be abandoned with
// esc, which cancels the request context.
func (m *Model) Confirm(message string) tea.Cmd {
	plan := m.started.Plan.Name
	if plan == "" {
		m.flash = theme.Danger.Render("start a payment first")
		return nil
	}
	if strings.TrimSpace(message) == "" {
		m.flash = theme.Danger.Render("Please paste your M-Pesa confirmation message.")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.step = stepProcessing
	m.flash = ""
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		defer cancel()
		out, err := port.Confirm(ctx, plan, message)
		return ConfirmedMsg{Out: out, Err: err}
	})
}

func (m Model) renderPlans() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Simple, Transparent Pricing") + "\n\n")
	for i, p := range m.plans {
		line := fmt.Sprintf("%s  %s", p.Title, theme.Muted.Render(p.Price))
		if p.Badge != "" {
			line += "  " + theme.Badge.Render(p.Badge)
		}
		if i == m.cursor {
			line = theme.Hot.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: select  enter: pay"))
	return sb.String()
}

func (m Model) renderPlanDetail() string {
	p, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No plans available")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Title) + "  " + p.Price)
	if p.OriginalPrice != "" {
		sb.WriteString("  " + theme.Muted.Render("was "+p.OriginalPrice))
	}
	sb.WriteString("\n" + p.Description + "\n\n")
	for _, f := range p.Features {
		sb.WriteString(theme.Success.Render("✓") + " " + f + "\n")
	}
	return sb.String()
}

func (m Model) renderInstructions() string {
	s := m.started
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Payment Instructions") + "\n")
	sb.WriteString(fmt.Sprintf("Pay %s via M-Pesa\n\n", s.Plan.Price))
	sb.WriteString(theme.Muted.Render("Payment Method: ") + s.Method + "\n")
	sb.WriteString(theme.Muted.Render("Till Number:    ") + theme.Hot.Render(s.Till) + "\n")
	sb.WriteString(theme.Muted.Render("Amount:         ") + s.Plan.Price + "\n")
	sb.WriteString(theme.Muted.Render("Reference:      ") + s.Reference + "\n")
	if s.Link != "" {
		sb.WriteString("\n" + theme.Muted.Render(s.Link))
	}
	return sb.String()
}

func (m Model) renderSuccess() string {
	r := m.result
	var sb strings.Builder
	sb.WriteString(theme.Success.Render("Payment Successful") + "\n\n")
	sb.WriteString("Your access code:\n" + theme.Hot.Render(r.Code) + "\n\n")
	sb.WriteString(theme.Muted.Render("Use it on a locked course with :code "+r.Code) + "\n")
	if r.ReceiptPath != "" {
		sb.WriteString(theme.Muted.Render("receipt: "+r.ReceiptPath) + "\n")
	}
	if r.Warning != "" {
		sb.WriteString(theme.Warn.Render(r.Warning) + "\n")
	}
	return sb.String()
}
