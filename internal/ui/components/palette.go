package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"microhub/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

type Command struct {
	Name string
	Args string
	Help string
}

func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commands must stay in sync with executePalette in app/model.go.
var Commands = []Command{
	{Name: "open", Args: "<course-id>", Help: "open a course"},
	{Name: "code", Args: "[access-code]", Help: "unlock the open course"},
	{Name: "quiz", Help: "take the final quiz"},
	{Name: "reset", Help: "reset progress for the open course"},
	{Name: "pay:start", Args: "<free|full|premium>", Help: "show till instructions"},
	{Name: "pay:confirm", Args: "<mpesa message>", Help: "confirm a payment"},
	{Name: "contact", Help: "show the WhatsApp contact"},
	{Name: "catalog", Help: "go to the catalog"},
	{Name: "pricing", Help: "go to pricing"},
}

// Match returns up to limit commands whose name starts with the first word
// of input. Once a full command name and a space are typed only that
// command matches.
func Match(input string, limit int) []Command {
	word, _, hasArgs := strings.Cut(strings.TrimLeft(strings.ToLower(input), " "), " ")
	var out []Command
	for _, c := range Commands {
		if hasArgs && c.Name != word {
			continue
		}
		if !strings.HasPrefix(c.Name, word) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

const maxHints = 5

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input    textinput.Model
	visible  bool
	selected int
	width    int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p Palette) Value() string { return p.input.Value() }

// Open shows the palette, clears the input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down":
			if p.selected < len(Match(p.input.Value(), maxHints))-1 {
				p.selected++
			}
			return p, nil
		case "tab":
			p.complete()
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

// complete replaces the typed word with the selected command name.
func (p *Palette) complete() {
	matches := Match(p.input.Value(), maxHints)
	if p.selected >= len(matches) {
		return
	}
	c := matches[p.selected]
	value := c.Name
	if c.Args != "" {
		value += " "
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.selected = 0
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := Match(p.input.Value(), maxHints); len(matches) > 0 {
		sb.WriteString("\n")
		for i, c := range matches {
			line := "  " + c.Usage()
			if i == p.selected {
				line = theme.Hot.Render("› "+c.Usage()) + "  " + hintStyle.Render(c.Help)
			} else {
				line = hintStyle.Render(line)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n" + hintStyle.Render("tab: complete  ↑/↓: choose  enter: run  esc: close"))
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
