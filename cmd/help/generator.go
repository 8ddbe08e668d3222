package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"globalaccel/accel"
	"globalaccel/keys"
)

// Generator renders registry listings for the terminal.
type Generator struct {
	namer keys.Namer

	// Styles for formatting help content
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	keyStyle    lipgloss.Style
	descStyle   lipgloss.Style
	nameStyle   lipgloss.Style
	warnStyle   lipgloss.Style
}

// NewGenerator creates a generator that names keys with namer.
func NewGenerator(namer keys.Namer) *Generator {
	if namer == nil {
		namer = keys.Internal
	}
	return &Generator{
		namer:       namer,
		titleStyle:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9")),
		keyStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00")),
		descStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		nameStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
	}
}

// section is a label and the actions registered after it.
type section struct {
	label   *accel.Action
	actions []*accel.Action
}

// groupByLabel splits the registry at its labels, keeping registry order.
func groupByLabel(reg *accel.Registry) []section {
	var sections []section
	current := section{}
	for _, a := range reg.Actions() {
		if a.IsLabel() {
			if current.label != nil || len(current.actions) > 0 {
				sections = append(sections, current)
			}
			current = section{label: a}
			continue
		}
		current.actions = append(current.actions, a)
	}
	if current.label != nil || len(current.actions) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// Listing renders every action grouped under its label. When mgr is not
// nil, keys an action claims but does not hold are flagged with the
// action that won them.
func (g *Generator) Listing(title string, reg *accel.Registry, mgr *accel.Manager) string {
	var content strings.Builder
	content.WriteString(g.titleStyle.Render(title))
	content.WriteString("\n\n")

	if reg.Len() == 0 {
		content.WriteString(g.descStyle.Render("No actions configured"))
		content.WriteString("\n")
		return content.String()
	}

	// Pad the key column to the widest entry. Localized key names may be
	// wide or combining characters, so measure display cells.
	width := 0
	for _, a := range reg.Actions() {
		width = max(width, runewidth.StringWidth(g.keyText(a)))
	}

	for i, sec := range groupByLabel(reg) {
		if i > 0 {
			content.WriteString("\n")
		}
		if sec.label != nil {
			header := sec.label.Name()
			if sec.label.Description() != "" {
				header = sec.label.Description()
			}
			content.WriteString(g.headerStyle.Render(header + ":"))
			content.WriteString("\n")
		}
		for _, a := range sec.actions {
			content.WriteString(g.formatAction(a, width, mgr))
			content.WriteString("\n")
		}
	}
	return content.String()
}

func (g *Generator) keyText(a *accel.Action) string {
	if a.IsLabel() {
		return ""
	}
	if a.Shortcuts().IsEmpty() {
		return "-"
	}
	return a.Shortcuts().Format(g.namer, nil)
}

func (g *Generator) formatAction(a *accel.Action, width int, mgr *accel.Manager) string {
	keyText := runewidth.FillRight(g.keyText(a), width)
	desc := a.Description()
	if desc == "" {
		desc = a.Name()
	}

	line := fmt.Sprintf("  %s  %s %s",
		g.keyStyle.Render(keyText),
		g.descStyle.Render(desc),
		g.nameStyle.Render("["+a.Name()+"]"))

	if !a.Enabled() {
		line += g.warnStyle.Render(" (disabled)")
	}
	if !a.Configurable() {
		line += g.nameStyle.Render(" (fixed)")
	}
	if mgr != nil && a.Enabled() {
		for _, lost := range g.lostKeys(a, mgr) {
			line += g.warnStyle.Render(" " + lost)
		}
	}
	return line
}

// lostKeys describes the first-keystroke combos of a that resolve to
// another action or could not be grabbed.
func (g *Generator) lostKeys(a *accel.Action, mgr *accel.Manager) []string {
	var out []string
	seen := make(map[keys.Combo]bool)
	for _, sc := range a.Shortcuts() {
		c := sc.First().Primary()
		if c.IsZero() || seen[c] {
			continue
		}
		seen[c] = true
		owner, ok := mgr.Lookup(c)
		switch {
		case !ok:
			out = append(out, fmt.Sprintf("(%s not grabbed)", c.Format(g.namer)))
		case owner != a:
			out = append(out, fmt.Sprintf("(%s taken by %s)", c.Format(g.namer), owner.Name()))
		}
	}
	return out
}

// Conflicts describes every combo claimed by more than one action.
func (g *Generator) Conflicts(reg *accel.Registry) []string {
	var issues []string
	for _, c := range reg.DetectConflicts() {
		names := make([]string, len(c.Actions))
		for i, a := range c.Actions {
			names[i] = a.Name()
		}
		issues = append(issues, fmt.Sprintf("Key conflict: '%s' bound to %s (%s wins)",
			c.Combo.Format(g.namer), strings.Join(names, ", "), names[0]))
	}
	return issues
}

// Unbound lists enabled actions without any shortcut.
func (g *Generator) Unbound(reg *accel.Registry) []string {
	var issues []string
	for _, a := range reg.Actions() {
		if a.IsLabel() || !a.Enabled() {
			continue
		}
		if a.Shortcuts().IsEmpty() {
			issues = append(issues, fmt.Sprintf("Action %s has no key bindings", a.Name()))
		}
	}
	return issues
}
