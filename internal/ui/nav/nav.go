// Package nav resolves the section/page a view registers into the
// breadcrumb shown in the page header.
package nav

import (
	"fmt"
	"strings"
	"sync"

	"github.com/willibrandon/ruledeck/internal/logger"
)

// Node is one entry of the navigation tree.
type Node struct {
	ID       string
	Text     string
	Icon     string
	SubTitle string
	Children []*Node
}

// Tree is the static navigation model.
var Tree = []*Node{
	{
		ID:       "alerting",
		Text:     "Alerting",
		Icon:     "🔔",
		SubTitle: "Alert rules & notifications",
		Children: []*Node{
			{ID: "alert-list", Text: "Alert Rules"},
			{ID: "notifications", Text: "Notification channels"},
		},
	},
}

// Model is the resolved section and page.
type Model struct {
	Section *Node
	Page    *Node
}

// Breadcrumb renders "Section › Page".
func (m Model) Breadcrumb() string {
	if m.Section == nil {
		return ""
	}
	if m.Page == nil {
		return m.Section.Text
	}
	return m.Section.Text + " › " + m.Page.Text
}

// Title returns the page title with the section icon.
func (m Model) Title() string {
	if m.Section == nil {
		return ""
	}
	parts := []string{}
	if m.Section.Icon != "" {
		parts = append(parts, m.Section.Icon)
	}
	parts = append(parts, m.Breadcrumb())
	return strings.Join(parts, " ")
}

// Nav tracks the currently loaded page.
type Nav struct {
	mu    sync.RWMutex
	tree  []*Node
	model Model
}

// New creates a Nav over tree, or over Tree when tree is nil.
func New(tree []*Node) *Nav {
	if tree == nil {
		tree = Tree
	}
	return &Nav{tree: tree}
}

// Load selects the section and page by ID. Unknown IDs leave a partial
// model and are logged.
func (n *Nav) Load(sectionID, pageID string) {
	model, err := n.resolve(sectionID, pageID)
	if err != nil {
		logger.Warn("nav: load failed", "section", sectionID, "page", pageID, "error", err)
	}

	n.mu.Lock()
	n.model = model
	n.mu.Unlock()
}

// Model returns the current navigation model.
func (n *Nav) Model() Model {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.model
}

func (n *Nav) resolve(sectionID, pageID string) (Model, error) {
	for _, section := range n.tree {
		if section.ID != sectionID {
			continue
		}
		for _, page := range section.Children {
			if page.ID == pageID {
				return Model{Section: section, Page: page}, nil
			}
		}
		return Model{Section: section}, fmt.Errorf("page %q not found in %q", pageID, sectionID)
	}
	return Model{}, fmt.Errorf("section %q not found", sectionID)
}
