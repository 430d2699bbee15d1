package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/atmos/internal/config"
	"github.com/five82/atmos/internal/locate"
	"github.com/five82/atmos/internal/logging"
	"github.com/five82/atmos/internal/state"
	"github.com/five82/atmos/internal/storage"
	"github.com/five82/atmos/internal/summary"
	"github.com/five82/atmos/internal/ui"
	"github.com/five82/atmos/internal/weather"
)

// Options configure the atmos application.
type Options struct {
	ConfigPath string // empty uses ~/.config/atmos/config.toml
	StatePath  string // overrides state_path from the config file
	EnvFile    string // optional dotenv file with ATMOS_API_KEY
}

// runtime holds what every entry point needs.
type runtime struct {
	cfg      config.Config
	log      *zap.Logger
	closeLog func()
	store    *storage.Store
	weather  *weather.Client
}

func (r *runtime) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.Warn("close state store", zap.Error(err))
		}
	}
	r.closeLog()
}

func setup(opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load atmos config: %w", err)
	}
	if err := cfg.LoadEnv(opts.EnvFile); err != nil {
		return nil, err
	}
	if p := strings.TrimSpace(opts.StatePath); p != "" {
		cfg.StatePath = p
	}

	logger, closeLog, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	r := &runtime{cfg: cfg, log: logger, closeLog: closeLog}

	remote, err := weather.NewRemote(weather.RemoteOptions{
		BaseURL:           cfg.Weather.BaseURL,
		Timeout:           cfg.Weather.Timeout,
		RequestsPerSecond: cfg.Weather.RequestsPerSecond,
		Burst:             cfg.Weather.Burst,
		Logger:            logger.Named("weather"),
	})
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("init weather client: %w", err)
	}
	r.weather = weather.NewClient(remote, weather.NewMock(weather.MockOptions{Delay: cfg.Weather.MockDelay}))

	store, err := storage.Open(cfg.StatePath)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("open state store: %w", err)
	}
	r.store = store
	return r, nil
}

// loadState reads the persisted state, falling back to defaults on a
// damaged document, and seeds the API key from the environment.
func (r *runtime) loadState(ctx context.Context) state.State {
	st, err := state.Load(ctx, r.store)
	if err != nil {
		r.log.Warn("persisted state unreadable, using defaults", zap.Error(err))
	}
	if seedAPIKey(&st, r.cfg.APIKey) {
		r.log.Info("api key seeded from environment")
	}
	return st
}

// seedAPIKey fills an empty stored key from key. It reports whether it did.
func seedAPIKey(st *state.State, key string) bool {
	if !st.DemoMode() {
		return false
	}
	return st.SetAPIKey(key)
}

// Run boots the atmos TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	r, err := setup(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	st := r.loadState(ctx)

	summaries, err := summary.NewClient(r.cfg.Summary.BaseURL, r.cfg.Summary.Timeout, r.log.Named("summary"))
	if err != nil {
		return fmt.Errorf("init summary client: %w", err)
	}
	locator, err := locate.New(locate.Options{
		Enabled:  r.cfg.Location.Enabled,
		Endpoint: r.cfg.Location.Endpoint,
		Timeout:  r.cfg.Location.Timeout,
	})
	if err != nil {
		return fmt.Errorf("init locator: %w", err)
	}

	r.log.Info("atmos starting",
		zap.String("state", r.store.Path()),
		zap.Int("cities", len(st.Cities)),
		zap.Bool("demo_mode", st.DemoMode()))

	return ui.Run(ui.Options{
		Context: ctx,
		Weather: r.weather,
		Summary: summaries,
		Locator: locator,
		Store:   r.store,
		State:   st,
		Logger:  r.log.Named("ui"),
	})
}

// Lookup runs a single weather query with the same source selection as the
// TUI. It never writes the persisted state.
func Lookup(ctx context.Context, opts Options, q weather.Query) (weather.Snapshot, error) {
	r, err := setup(opts)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer r.Close()

	st := r.loadState(ctx)
	snap, err := r.weather.FetchCurrentAndForecast(ctx, q, st.Settings.APIKey)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("lookup %s: %w", q, err)
	}
	return snap, nil
}

// History returns the saved cities, most recent first.
func History(ctx context.Context, opts Options) ([]weather.Snapshot, error) {
	r, err := setup(opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	st, err := state.Load(ctx, r.store)
	if err != nil {
		return nil, err
	}
	return st.Cities, nil
}
