package cli

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TechXTT/ydbc"
	"github.com/TechXTT/ydbc/pkg/config"
	"github.com/TechXTT/ydbc/pkg/logutil"
	"github.com/TechXTT/ydbc/pkg/metrics"
	"github.com/TechXTT/ydbc/pkg/session"
	"github.com/TechXTT/ydbc/pkg/spi"
	"github.com/TechXTT/ydbc/pkg/sqlsession"
)

type globalOptions struct {
	configPath string
}

type provider interface {
	session.Provider
	Close() error
}

// openProvider is replaced in tests.
var openProvider = func(cfg *config.Config, lg *zap.Logger) (provider, error) {
	return sqlsession.Open(cfg.Driver, cfg.DSN, lg)
}

var registerMetrics sync.Once

// app is the per-invocation runtime: configuration, logger and one connection.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider provider
	conn     *ydbc.Connection
}

func (o *globalOptions) connect(ctx context.Context) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	lg, err := logutil.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr, lg)
	}

	p, err := openProvider(cfg, lg)
	if err != nil {
		return nil, err
	}
	conn, err := ydbc.NewConnectionFactory(p, ydbc.WithLogger(lg)).Create(ctx)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return &app{cfg: cfg, logger: lg, provider: p, conn: conn}, nil
}

// close ends the connection, rolling back an open transaction, and releases
// the database handle.
func (a *app) close(ctx context.Context) {
	if err := a.conn.Close(ctx); err != nil && !errors.Is(err, spi.ErrConnectionClosed) {
		a.logger.Warn("close connection", zap.Error(err))
	}
	if err := a.provider.Close(); err != nil {
		a.logger.Warn("close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func serveMetrics(addr string, lg *zap.Logger) {
	registerMetrics.Do(metrics.RegisterMetrics)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	lg.Info("serving metrics", zap.String("addr", addr))
}
