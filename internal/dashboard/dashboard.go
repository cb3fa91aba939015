// Package dashboard is an optional terminal view of the live
// connection registry, refreshed once a second.
package dashboard

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"hybrid_gw/internal/registry"
)

type Dashboard interface {
	Start()
	Stop()
}

type dashboard struct {
	registry registry.Registry
	domain   string
	program  *tea.Program
}

func New(reg registry.Registry, domain string) Dashboard {
	return &dashboard{
		registry: reg,
		domain:   domain,
	}
}

// Start runs the terminal program and blocks until it quits.
func (d *dashboard) Start() {
	lipgloss.SetColorProfile(termenv.TrueColor)

	d.program = tea.NewProgram(
		newModel(d.registry, d.domain),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
		tea.WithFPS(30),
	)

	_, err := d.program.Run()
	if err != nil {
		log.Printf("Cannot close tea: %s \n", err)
	}
	d.program = nil
}

func (d *dashboard) Stop() {
	if d.program != nil {
		d.program.Kill()
		d.program = nil
	}
}
