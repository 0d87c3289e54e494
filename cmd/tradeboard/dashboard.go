package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/tradeboard/internal/config"
	"github.com/alexisbeaulieu97/tradeboard/internal/dataset"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
	"github.com/alexisbeaulieu97/tradeboard/internal/tui/dashboard"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

var errNoTerminal = errors.New("standard input and output must be a terminal")

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runDashboard(cmd *cobra.Command, flags *rootFlags) error {
	if !isTerminal() {
		return newCommandError("launch dashboard", "checking the terminal", errNoTerminal, "Run tradeboard from an interactive terminal, or use 'tradeboard state' to inspect saved view state.")
	}

	app, err := newAppContext(flags, appOptions{logFile: true, fallback: true})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			app.Log.Error(cerr, "failed to close storage")
		}
	}()

	deps, err := dashboardDeps(app)
	if err != nil {
		return err
	}

	m, err := dashboard.NewModel(deps)
	if err != nil {
		app.Log.Error(err, "dashboard setup failed")
		return newCommandError("launch dashboard", "mounting tables", err, "Check the color_modes of your settings file with 'tradeboard validate'.")
	}

	app.Log.Info("launching dashboard")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	teardown(m, final)
	if err != nil {
		app.Log.Error(err, "dashboard execution failed")
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	app.Log.Info("dashboard closed")
	return nil
}

// teardown stops chart writes of the model the program ended with, or of the
// initial one when the program returned none.
func teardown(initial dashboard.Model, final tea.Model) {
	if last, ok := final.(dashboard.Model); ok {
		last.Teardown()
		return
	}
	initial.Teardown()
}

// dashboardDeps builds the dashboard services from the loaded settings.
func dashboardDeps(app *AppContext) (dashboard.Deps, error) {
	specs, err := config.TableSpecs(app.Config)
	if err != nil {
		return dashboard.Deps{}, newCommandError("launch dashboard", "checking table color modes", err, "Fix the color_modes of your settings file.")
	}

	data := dataset.Embedded()
	if dir := strings.TrimSpace(app.Config.Display.DataDir); dir != "" {
		data = dataset.FromFS(os.DirFS(dir))
	}

	seedTheme(app.Store, app.Config.Display.Theme)

	return dashboard.Deps{
		Store:      app.Store,
		Theme:      theme.New(app.Store, nil),
		Specs:      specs,
		Data:       data,
		Log:        app.Log,
		Pagination: app.Config.Display.Pagination,
		PageSize:   app.Config.Display.PageSize,
		Notice:     app.Notice,
	}, nil
}

// seedTheme applies the configured theme until the user picks one in the
// dashboard.
func seedTheme(store *viewstate.Store, configured string) {
	if _, saved := store.GetString(viewstate.GlobalSettingsKey, "currentTheme"); saved {
		return
	}
	pref, err := theme.ParsePreference(configured)
	if err != nil || pref == theme.PreferenceSystem {
		return
	}
	_ = store.Set(viewstate.GlobalSettingsKey, []string{"currentTheme"}, string(pref))
	_ = store.Set(viewstate.GlobalSettingsKey, []string{"isDarkMode"}, pref == theme.PreferenceDark)
}
