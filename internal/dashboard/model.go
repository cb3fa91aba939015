package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hybrid_gw/internal/registry"
	"hybrid_gw/internal/version"
)

const (
	ColorPrimary   = "#7D56F4"
	ColorSecondary = "#04B575"
	ColorGray      = "#888888"
	ColorDarkGray  = "#666666"
	ColorWhite     = "#FAFAFA"
	ColorError     = "#FF0000"
)

const refreshInterval = time.Second

type keymap struct {
	quit    key.Binding
	refresh key.Binding
}

type tickMsg time.Time

type model struct {
	registry registry.Registry
	domain   string
	rows     []registry.Detail
	keymap   keymap
	help     help.Model
	quitting bool
	width    int
	height   int
}

func newModel(reg registry.Registry, domain string) *model {
	return &model{
		registry: reg,
		domain:   domain,
		rows:     reg.Snapshot(),
		keymap: keymap{
			quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
			refresh: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "refresh"),
			),
		},
		help: help.New(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.WindowSize())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.rows = m.registry.Snapshot()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.refresh):
			m.rows = m.registry.Snapshot()
			return m, nil
		}
	}

	return m, nil
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimary)).
		PaddingTop(1)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorGray)).
		Italic(true)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorGray)).
		Bold(true)

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite))

	failureStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorError)).
		Bold(true)

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondary)).
		Bold(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("HYBRID GATEWAY"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(version.GetVersion()))
	if m.domain != "" {
		b.WriteString(subtitleStyle.Render(" • " + m.domain))
	}
	b.WriteString("\n\n")

	b.WriteString(countStyle.Render(fmt.Sprintf("%d", len(m.rows))))
	b.WriteString(rowStyle.Render(" live connections"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-22s %-9s %7s %7s %8s",
		"ID", "REMOTE", "UPTIME", "WEB", "RPC", "FAILURES")))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(subtitleStyle.Render("no active connections"))
		b.WriteString("\n")
	}

	now := time.Now()
	for _, row := range m.rows {
		line := fmt.Sprintf("%-10s %-22s %-9s %7d %7d ",
			truncateString(row.ID, 10),
			truncateString(row.RemoteAddr, 22),
			formatUptime(now.Sub(row.StartedAt)),
			row.WebRequests,
			row.RpcRequests)
		b.WriteString(rowStyle.Render(line))
		if row.Failures > 0 {
			b.WriteString(failureStyle.Render(fmt.Sprintf("%8d", row.Failures)))
		} else {
			b.WriteString(rowStyle.Render(fmt.Sprintf("%8d", row.Failures)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keymap.refresh, m.keymap.quit}))

	return b.String()
}

func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength < 4 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
