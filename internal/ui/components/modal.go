package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/willibrandon/ruledeck/internal/ui/styles"
)

// ModalContent is a registered static modal body.
type ModalContent struct {
	Title string
	Body  string
}

// modalContents maps content references to their text.
var modalContents = map[string]ModalContent{
	"alert_howto": {
		Title: "Adding an Alert",
		Body: "Alerts are added and configured in the Alert tab of any dashboard graph panel, " +
			"letting you build and visualize an alert using existing queries.\n\n" +
			"Remember to save the dashboard to persist your alert rule changes.\n\n" +
			"Rules stored locally can be seeded with `ruledeck import rules.yaml`.",
	},
}

// RegisterModalContent adds or replaces a content reference.
func RegisterModalContent(src string, content ModalContent) {
	modalContents[src] = content
}

// LookupModalContent returns the content registered under src.
func LookupModalContent(src string) (ModalContent, bool) {
	c, ok := modalContents[src]
	return c, ok
}

// Modal displays registered static content in a scrollable box.
type Modal struct {
	viewport viewport.Model
	width    int
	height   int
	visible  bool
	src      string
	class    string
	content  ModalContent
}

// NewModal creates a hidden modal.
func NewModal() *Modal {
	return &Modal{}
}

// Show opens the modal with the content registered under src. Unknown
// references show a placeholder body.
func (m *Modal) Show(src, class string) {
	content, ok := LookupModalContent(src)
	if !ok {
		content = ModalContent{Title: src, Body: "No content available."}
	}
	m.src = src
	m.class = class
	m.content = content
	m.visible = true
	m.layout()
}

// Hide hides the modal.
func (m *Modal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is visible.
func (m *Modal) IsVisible() bool {
	return m.visible
}

// Src returns the content reference currently shown.
func (m *Modal) Src() string {
	return m.src
}

// Class returns the modal class requested by the view.
func (m *Modal) Class() string {
	return m.class
}

// SetSize sets the screen dimensions.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

func (m *Modal) boxWidth() int {
	w := m.width * 60 / 100
	if w < 40 {
		w = 40
	}
	return w
}

func (m *Modal) layout() {
	innerWidth := m.boxWidth() - 6 // border and padding
	innerHeight := m.height*50/100 - 6
	if innerHeight < 5 {
		innerHeight = 5
	}

	m.viewport = viewport.New(innerWidth, innerHeight)
	m.viewport.Style = lipgloss.NewStyle()

	var paragraphs []string
	for _, p := range strings.Split(m.content.Body, "\n") {
		paragraphs = append(paragraphs, wordwrap.WrapString(p, uint(max(innerWidth, 1))))
	}
	body := strings.Join(paragraphs, "\n")
	m.viewport.SetContent(body)

	if lines := strings.Count(body, "\n") + 1; lines < innerHeight {
		m.viewport.Height = lines
	}
}

// Update handles scrolling and closing.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "enter", "i":
			m.Hide()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the modal centered on screen.
func (m *Modal) View() string {
	if !m.visible {
		return ""
	}

	borderColor := styles.ColorAccent
	if m.class == "confirm-modal" {
		borderColor = styles.ColorStatePaused
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.DialogTitleStyle.Render(m.content.Title),
		"",
		m.viewport.View(),
		"",
		styles.MutedStyle.Render("[esc] close  [j/k] scroll"),
	)

	box := styles.DialogStyle.
		BorderForeground(borderColor).
		Width(m.boxWidth()).
		Render(content)

	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
