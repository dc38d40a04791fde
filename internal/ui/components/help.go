package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/ruledeck/internal/ui/styles"
)

// HelpSection is a titled group of key bindings.
type HelpSection struct {
	Title    string
	Note     string
	Bindings []key.Binding
}

// HelpOverlay renders key bindings centered over the screen.
type HelpOverlay struct {
	width    int
	height   int
	title    string
	sections []HelpSection
}

// NewHelpOverlay creates a help overlay.
func NewHelpOverlay(title string, sections ...HelpSection) *HelpOverlay {
	return &HelpOverlay{title: title, sections: sections}
}

// SetSize sets the size of the area the overlay is centered in.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help screen
func (h *HelpOverlay) View() string {
	var b strings.Builder

	b.WriteString(styles.HelpTitleStyle.Render(h.title))
	b.WriteString("\n")

	for _, section := range h.sections {
		b.WriteString(styles.HelpSectionStyle.Render(section.Title))
		b.WriteString("\n")
		if section.Note != "" {
			b.WriteString(styles.MutedStyle.Render(section.Note))
			b.WriteString("\n")
		}
		for _, binding := range section.Bindings {
			if !binding.Enabled() {
				continue
			}
			help := binding.Help()
			b.WriteString(styles.HelpKeyStyle.Render(help.Key))
			b.WriteString(styles.HelpDescStyle.Render(help.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("Press esc or h to close"))

	dialog := styles.HelpDialogStyle.Render(b.String())

	if h.width > 0 {
		dialog = lipgloss.Place(
			h.width,
			h.height,
			lipgloss.Center,
			lipgloss.Center,
			dialog,
		)
	}

	return dialog
}
