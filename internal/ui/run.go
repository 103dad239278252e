package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/linegrep/internal/store"
	"github.com/DaanHessen/linegrep/internal/util"
)

// Run boots the TUI program and blocks until it exits. db may be nil; the
// history views then degrade to a status message.
func Run(ctx context.Context, db *store.DB, cfg util.Config, version string) error {
	m, err := initialModel(ctx, db, cfg, version)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
