package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/models"
)

// TUI is the terminal garage browser.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// Run shows the browser until the user quits or ctx is done. A user quit is
// reported as [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, t.buildInfo)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Debug().Str("func", "TUI.Run").Msg("user quit")
		return ErrUserQuit
	}
	return nil
}
