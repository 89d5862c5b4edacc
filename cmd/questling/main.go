package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/questling/server/internal/config"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/engine"
	"github.com/questling/server/internal/persist"
	"github.com/questling/server/internal/scripting"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("QUESTLING_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("questling starting",
		zap.String("server", cfg.Server.Name),
		zap.Int("id", cfg.Server.ID),
	)

	// 3. Connect to PostgreSQL and run migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("database ready")

	// 4. Load static catalogues; a bad reference fails the boot, never a
	//    runtime operation.
	dir := cfg.Progression.CataloguesDir
	classes, err := data.LoadClassTable(filepath.Join(dir, "classes.yaml"))
	if err != nil {
		return fmt.Errorf("load classes: %w", err)
	}
	zodiacs, err := data.LoadZodiacTable(filepath.Join(dir, "zodiacs.yaml"))
	if err != nil {
		return fmt.Errorf("load zodiacs: %w", err)
	}
	recipes, err := data.LoadRecipeTable(filepath.Join(dir, "recipes.yaml"))
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	quests, err := data.LoadQuestPool(filepath.Join(dir, "quests.yaml"))
	if err != nil {
		return fmt.Errorf("load quests: %w", err)
	}
	achievements, err := data.LoadAchievementTable(filepath.Join(dir, "achievements.yaml"))
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	log.Info("catalogues loaded",
		zap.Int("classes", classes.Count()),
		zap.Int("zodiacs", zodiacs.Count()),
		zap.Int("recipes", recipes.Count()),
		zap.Int("quests", quests.Count()),
		zap.Int("achievements", achievements.Count()),
	)

	// 5. Lua formula engine
	luaEngine, err := scripting.NewEngine(cfg.Progression.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer luaEngine.Close()

	// 6. Engine wiring
	state := world.NewState()
	bus := event.NewBus()
	eng := engine.New(&engine.Deps{
		Log:          log,
		Cfg:          cfg,
		Classes:      classes,
		Zodiacs:      zodiacs,
		Recipes:      recipes,
		Quests:       quests,
		Achievements: achievements,
		Formulas:     luaEngine,
		Bus:          bus,
		Rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		State:        state,
	})

	snapshots := persist.NewSnapshotter(db)
	if err := loadAllSessions(ctx, state, snapshots, eng, log); err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	log.Info("sessions loaded", zap.Int("count", state.Count()))

	// 7. Rollover + autosave loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	saveTicker := time.NewTicker(cfg.Progression.AutosaveInterval)
	defer saveTicker.Stop()
	rolloverTicker := time.NewTicker(time.Minute)
	defer rolloverTicker.Stop()

	log.Info("questling ready")

	for {
		select {
		case <-rolloverTicker.C:
			day := currentDay()
			state.Each(func(sess *world.Session) {
				if eng.Quest.RolloverDaily(sess, day) {
					log.Debug("rolled daily quests", zap.Int64("char", sess.Char.ID))
				}
			})
		case <-saveTicker.C:
			saveDirty(state, snapshots, log)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			saveDirty(state, snapshots, log)
			log.Info("questling stopped")
			return nil
		}
	}
}

// currentDay is the unix day stamp used for quest rollover.
func currentDay() int64 {
	return time.Now().Unix() / 86400
}

// loadAllSessions loads every character, verifies the loadout invariant and
// ensures achievement rows and today's quests exist.
func loadAllSessions(ctx context.Context, state *world.State, snapshots *persist.Snapshotter, eng *engine.Engine, log *zap.Logger) error {
	rows, err := snapshots.Characters.LoadAll(ctx)
	if err != nil {
		return err
	}
	day := currentDay()
	for _, row := range rows {
		sess, err := snapshots.LoadSession(ctx, state, row.ID, day)
		if err != nil {
			return err
		}
		if sess == nil {
			continue
		}
		if err := eng.Equip.VerifyLoadout(sess); err != nil {
			// Corrupt snapshot: abort loudly rather than resolve stats from
			// inconsistent state.
			return fmt.Errorf("character %d: %w", row.ID, err)
		}
		eng.Achieve.EnsureProgress(sess)
		eng.Quest.RolloverDaily(sess, day)
	}
	return nil
}

func saveDirty(state *world.State, snapshots *persist.Snapshotter, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	saved := 0
	state.Each(func(sess *world.Session) {
		if !sess.Char.Dirty {
			return
		}
		if err := snapshots.SaveSession(ctx, sess); err != nil {
			log.Error("save failed", zap.Int64("char", sess.Char.ID), zap.Error(err))
			return
		}
		saved++
	})
	if saved > 0 {
		log.Info("autosave complete", zap.Int("characters", saved))
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
