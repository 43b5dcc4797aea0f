package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "pomo/internal/modules/history/adapter/in"
	historyoutadapter "pomo/internal/modules/history/adapter/out"
	historyservice "pomo/internal/modules/history/service"
	historyusecase "pomo/internal/modules/history/usecase"
	notifyinadapter "pomo/internal/modules/notify/adapter/in"
	notifyoutadapter "pomo/internal/modules/notify/adapter/out"
	notifyservice "pomo/internal/modules/notify/service"
	notifyusecase "pomo/internal/modules/notify/usecase"
	timerinadapter "pomo/internal/modules/timer/adapter/in"
	timeroutadapter "pomo/internal/modules/timer/adapter/out"
	timerservice "pomo/internal/modules/timer/service"
	timerusecase "pomo/internal/modules/timer/usecase"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/config"
	uiapp "pomo/internal/ui/app"
)

type App struct {
	TimerCLI   timerinadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	NotifyCLI  notifyinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}

	stateStore := timeroutadapter.NewFileStateStore(cfg.DataDir)
	logStore := timeroutadapter.NewFileLogStore(cfg.DataDir)
	timerUC := timerusecase.NewInteractor(timerservice.NewTimerService(clk, stateStore, logStore))

	projector, err := historyoutadapter.NewSQLiteIndexProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(
		historyoutadapter.NewFileLogScanner(cfg.DataDir),
		projector,
	))

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.DataDir),
		notifyoutadapter.NewGRPCHost(),
	))

	return &App{
		TimerCLI:   timerinadapter.NewCLIHandler(timerUC),
		HistoryCLI: historyinadapter.NewCLIHandler(historyUC),
		NotifyCLI:  notifyinadapter.NewCLIHandler(notifyUC),
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(cfg, app.TimerCLI, app.HistoryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
