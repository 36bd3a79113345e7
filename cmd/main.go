package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mnaljm/Project-bonk/internal/automod"
	"github.com/mnaljm/Project-bonk/internal/bot"
	"github.com/mnaljm/Project-bonk/internal/commands"
	"github.com/mnaljm/Project-bonk/internal/config"
	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/dispatcher"
	"github.com/mnaljm/Project-bonk/internal/escalation"
	"github.com/mnaljm/Project-bonk/internal/lockdown"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/metrics"
	"github.com/mnaljm/Project-bonk/internal/platform"
	"github.com/mnaljm/Project-bonk/internal/scheduler"
	"github.com/mnaljm/Project-bonk/internal/watchdog"
)

func main() {
	fmt.Println("Starting Project Bonk moderation engine")

	cfg := loadConfig()

	if err := initializeLogging(cfg); err != nil {
		panic(err)
	}

	if err := initializeDatabase(cfg); err != nil {
		panic(err)
	}

	if cfg.Bot.Token == "" {
		logging.Critical("No bot token configured (set DISCORD_TOKEN or bot.token in config.json)")
		os.Exit(1)
	}

	components, err := startComponents(cfg)
	if err != nil {
		panic(err)
	}

	logging.Info("All components started successfully")

	waitForShutdown()

	stopComponents(components)

	bot.GetSession().Close()
	database.Close()

	logging.Info("Shutdown complete")
}

func loadConfig() *config.Config {
	cfg, err := config.Load("config.json")
	if err != nil {
		fmt.Printf("Config load failed, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	return cfg
}

func initializeLogging(cfg *config.Config) error {
	return logging.InitGlobalLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Path)
}

func initializeDatabase(cfg *config.Config) error {
	fmt.Println("Initializing SQLite database...")
	return database.Initialize(cfg.Database.Path)
}

type Components struct {
	dispatcher       *dispatcher.Dispatcher
	controller       *lockdown.Controller
	expirySweeper    *scheduler.ExpirySweeper
	retentionSweeper *scheduler.RetentionSweeper
	watchdog         *watchdog.Watchdog
	metricsServer    *metrics.Server
}

func startComponents(cfg *config.Config) (*Components, error) {
	db := database.GetDB()

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		return nil, err
	}
	session := bot.GetSession()

	client := platform.NewDiscord(session.GetDiscord(),
		time.Duration(cfg.Engine.PlatformTimeoutMs)*time.Millisecond)

	engine := automod.NewEngine()
	escalator := escalation.NewTracker(db, client)
	disp := dispatcher.New(db, client, escalator)

	modTracker := lockdown.NewActivityTracker()
	controller := lockdown.NewController(db, client, lockdown.DefaultSignals(modTracker),
		time.Duration(cfg.Engine.LockdownCheckSeconds)*time.Second,
		time.Duration(cfg.Engine.LockdownGraceSeconds)*time.Second)

	expirySweeper := scheduler.NewExpirySweeper(db, client,
		time.Duration(cfg.Engine.ExpirySweepSeconds)*time.Second)
	retentionSweeper := scheduler.NewRetentionSweeper(db,
		time.Duration(cfg.Engine.ActivitySweepHours)*time.Hour,
		cfg.Engine.ActivityRetentionDays)

	// A loop counts as stalled after missing three ticks.
	wd := watchdog.NewWatchdog(time.Minute)
	wd.RegisterComponent("lockdown_controller", 3*time.Duration(cfg.Engine.LockdownCheckSeconds)*time.Second)
	wd.RegisterComponent("expiry_sweeper", 3*time.Duration(cfg.Engine.ExpirySweepSeconds)*time.Second)
	wd.RegisterComponent("retention_sweeper", 3*time.Duration(cfg.Engine.ActivitySweepHours)*time.Hour)
	controller.SetHeartbeat(wd.HeartbeatFunc("lockdown_controller"))
	expirySweeper.SetHeartbeat(wd.HeartbeatFunc("expiry_sweeper"))
	retentionSweeper.SetHeartbeat(wd.HeartbeatFunc("retention_sweeper"))

	handlers := bot.NewHandlers(db, engine, disp, modTracker)
	handlers.Register(session)

	if err := session.Connect(); err != nil {
		return nil, err
	}

	session.SyncGuilds(db)

	if err := commands.Initialize(session, db, client, controller, modTracker, cfg.Bot.GuildID); err != nil {
		return nil, err
	}

	controller.Start()
	expirySweeper.Start()
	retentionSweeper.Start()
	wd.Start()

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Addr)
		metricsServer.Start()
		logging.Info("Metrics server listening on %s", cfg.Metrics.Addr)
	}

	return &Components{
		dispatcher:       disp,
		controller:       controller,
		expirySweeper:    expirySweeper,
		retentionSweeper: retentionSweeper,
		watchdog:         wd,
		metricsServer:    metricsServer,
	}, nil
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}

func stopComponents(c *Components) {
	c.watchdog.Stop()
	c.controller.Stop()
	c.expirySweeper.Stop()
	c.retentionSweeper.Stop()
	c.dispatcher.Close()

	if c.metricsServer != nil {
		if err := c.metricsServer.Stop(); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		}
	}
}
