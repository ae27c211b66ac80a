// Package tui renders an interactive preview of a fuzzy diff before it is
// applied: the colorized hunks, the patched result, and a markdown summary,
// in a scrollable viewport.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	glam "github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/asynkron/fudiff/pkg/fudiff"
)

// Preview holds everything the preview screen displays.
type Preview struct {
	// Target is the display name of the file being patched.
	Target string
	// Diff is the parsed diff to visualize.
	Diff *fudiff.Diff
	// Result is the patched text, when the diff applied cleanly.
	Result string
	// ApplyErr is the failure, when it did not.
	ApplyErr error
}

type pane int

const (
	paneDiff pane = iota
	paneResult
	paneSummary
	paneCount
)

func (p pane) title() string {
	switch p {
	case paneDiff:
		return "diff"
	case paneResult:
		return "result"
	default:
		return "summary"
	}
}

type model struct {
	preview Preview

	vp     viewport.Model
	width  int
	height int
	ready  bool
	active pane

	glam *glam.TermRenderer

	titleStyle  lipgloss.Style
	tabStyle    lipgloss.Style
	activeTab   lipgloss.Style
	headerStyle lipgloss.Style
	ctxStyle    lipgloss.Style
	delStyle    lipgloss.Style
	addStyle    lipgloss.Style
	errStyle    lipgloss.Style
	footStyle   lipgloss.Style
}

func newModel(preview Preview) *model {
	m := &model{
		preview: preview,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("57")).
			PaddingLeft(1).
			PaddingRight(1),
		tabStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).PaddingLeft(1).PaddingRight(1),
		activeTab:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).PaddingLeft(1).PaddingRight(1),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		ctxStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		delStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		addStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		footStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	_ = m.rebuildRenderer(80)
	return m
}

func (m *model) rebuildRenderer(width int) error {
	renderer, err := glam.NewTermRenderer(
		glam.WithAutoStyle(),
		glam.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	m.glam = renderer
	return nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % paneCount
			m.refreshContent()
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + paneCount - 1) % paneCount
			m.refreshContent()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeHeight := 3
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - chromeHeight
		}
		_ = m.rebuildRenderer(msg.Width)
		m.refreshContent()
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *model) refreshContent() {
	if !m.ready {
		return
	}
	switch m.active {
	case paneDiff:
		m.vp.SetContent(m.renderDiff())
	case paneResult:
		m.vp.SetContent(m.renderResult())
	default:
		m.vp.SetContent(m.renderSummary())
	}
	m.vp.GotoTop()
}

func (m *model) renderDiff() string {
	var lines []string
	for _, raw := range diffLines(m.preview.Diff) {
		switch {
		case strings.HasPrefix(raw, "@@"):
			lines = append(lines, m.headerStyle.Render(raw))
		case strings.HasPrefix(raw, "-"):
			lines = append(lines, m.delStyle.Render(raw))
		case strings.HasPrefix(raw, "+"):
			lines = append(lines, m.addStyle.Render(raw))
		default:
			lines = append(lines, m.ctxStyle.Render(raw))
		}
	}
	if len(lines) == 0 {
		return m.ctxStyle.Render("(empty diff)")
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderResult() string {
	if m.preview.ApplyErr != nil {
		message := m.preview.ApplyErr.Error()
		if perr, ok := m.preview.ApplyErr.(*fudiff.Error); ok {
			message = fudiff.FormatError(perr)
		}
		return m.errStyle.Render("patch does not apply") + "\n\n" + message
	}
	if m.preview.Result == "" {
		return m.ctxStyle.Render("(empty result)")
	}
	return m.preview.Result
}

func (m *model) renderSummary() string {
	markdown := SummaryMarkdown(m.preview)
	if m.glam == nil {
		return markdown
	}
	rendered, err := m.glam.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

func (m *model) View() string {
	if !m.ready {
		return "loading preview..."
	}

	title := m.titleStyle.Render("fudiff preview")
	if m.preview.Target != "" {
		title += m.tabStyle.Render(m.preview.Target)
	}

	var tabs []string
	for p := paneDiff; p < paneCount; p++ {
		if p == m.active {
			tabs = append(tabs, m.activeTab.Render("["+p.title()+"]"))
		} else {
			tabs = append(tabs, m.tabStyle.Render(p.title()))
		}
	}

	footer := m.footStyle.Render("tab: switch pane • arrows: scroll • q: quit")
	return title + "\n" + strings.Join(tabs, "") + "\n" + m.vp.View() + "\n" + footer
}

// diffLines flattens the diff into wire-format lines, header rows included.
func diffLines(d *fudiff.Diff) []string {
	if d == nil {
		return nil
	}
	rendered := strings.TrimSuffix(d.Render(), "\n")
	if rendered == "" {
		return nil
	}
	return strings.Split(rendered, "\n")
}

// SummaryMarkdown builds the markdown shown on the summary pane.
func SummaryMarkdown(preview Preview) string {
	var b strings.Builder
	b.WriteString("# Patch summary\n\n")
	if preview.Target != "" {
		fmt.Fprintf(&b, "Target: `%s`\n\n", preview.Target)
	}

	if preview.Diff == nil || len(preview.Diff.Hunks) == 0 {
		b.WriteString("The diff contains no hunks; the target is left unchanged.\n")
		return b.String()
	}

	deletions, additions := 0, 0
	for _, hunk := range preview.Diff.Hunks {
		deletions += len(hunk.Deletions)
		additions += len(hunk.Additions)
	}
	fmt.Fprintf(&b, "| Hunks | Deletions | Additions |\n|---|---|---|\n| %d | %d | %d |\n\n",
		len(preview.Diff.Hunks), deletions, additions)

	if preview.ApplyErr != nil {
		fmt.Fprintf(&b, "**Status:** does not apply\n\n```\n%s\n```\n", preview.ApplyErr.Error())
		return b.String()
	}
	b.WriteString("**Status:** applies cleanly\n")
	return b.String()
}

// Run shows the preview and blocks until the user dismisses it.
func Run(preview Preview) error {
	lipgloss.SetColorProfile(termenv.ColorProfile())
	program := tea.NewProgram(newModel(preview), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
