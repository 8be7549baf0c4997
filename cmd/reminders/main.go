package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/reminders/internal/app"
	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/notify"
	"github.com/nhle/reminders/internal/reminders"
	"github.com/nhle/reminders/internal/store"
)

func main() {
	configPathFlag := flag.String("config", "", "config file path")
	dbPathFlag := flag.String("db", "", "sqlite db path")
	flag.Parse()

	cfgPath := *configPathFlag
	if cfgPath == "" {
		cfgPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	if *dbPathFlag != "" {
		cfg.Storage.Path = *dbPathFlag
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = model.DefaultStoragePath()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		log.Fatal(err)
	}

	// Keep log output out of the terminal the UI is drawing on.
	logPath := filepath.Join(filepath.Dir(cfg.Storage.Path), "reminders.log")
	if f, err := tea.LogToFile(logPath, "reminders"); err == nil {
		defer f.Close()
	}

	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	var sched reminders.Scheduler
	if cfg.Notifications.Enabled {
		notifier := notify.NewDesktopNotifier(cfg.Notifications.Sound)
		s := notify.NewScheduler(notifier, clock.New())
		s.EnsurePermission()
		defer s.Stop()
		sched = s
	} else {
		sched = notify.NopScheduler{}
	}

	svc := reminders.NewService(st, sched, clock.New())

	ctx := context.Background()
	svc.Load(ctx)
	svc.RestoreSchedules(ctx)

	p := tea.NewProgram(app.New(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
