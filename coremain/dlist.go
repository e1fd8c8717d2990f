package coremain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmkol/dlist/mlog"
	"github.com/pmkol/dlist/pkg/safe_close"
	"github.com/pmkol/dlist/pkg/scenario"
)

// loadFunc loads the config and returns it with every file it was read from.
type loadFunc func() (*Config, []string, error)

type Dlist struct {
	logger *zap.Logger
	runner *scenario.Runner
	w      *reportWriter

	httpAPIMux *http.ServeMux
	metricsReg *prometheus.Registry

	sc *safe_close.SafeClose
}

func RunDlist(load loadFunc, w *reportWriter, watch bool) error {
	cfg, files, err := load()
	if err != nil {
		return err
	}

	m, err := newDlist(cfg, w)
	if err != nil {
		return err
	}

	if httpAddr := cfg.API.HTTP; len(httpAddr) > 0 {
		m.startHTTPServer(httpAddr)
	}

	if !watch {
		runErr := m.runAll(context.Background(), cfg)
		if err := m.sc.CloseWait(); err != nil && runErr == nil {
			return err
		}
		return runErr
	}

	m.sc.Attach(func(closeSignal <-chan struct{}) error {
		return m.watch(closeSignal, load, cfg, files)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	select {
	case s := <-sig:
		m.logger.Info("signal received", zap.Stringer("signal", s))
		m.sc.SendCloseSignal(nil)
	case <-m.sc.ReceiveCloseSignal():
	}
	return m.sc.CloseWait()
}

func newDlist(cfg *Config, w *reportWriter) (*Dlist, error) {
	lg, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	m := &Dlist{
		logger:     lg,
		w:          w,
		httpAPIMux: http.NewServeMux(),
		metricsReg: newMetricsReg(),
		sc:         safe_close.NewSafeClose(),
	}
	m.runner, err = scenario.NewRunner(lg, m.GetMetricsReg())
	if err != nil {
		return nil, fmt.Errorf("failed to init scenario runner, %w", err)
	}
	m.httpAPIMux.Handle("/metrics", promhttp.HandlerFor(m.metricsReg, promhttp.HandlerOpts{}))
	return m, nil
}

// runAll runs the scenarios of cfg in parallel. Every scenario owns its list,
// so a failing one does not stop the others. Reports of the successful
// scenarios are written in config order.
func (m *Dlist) runAll(ctx context.Context, cfg *Config) error {
	if len(cfg.Scenarios) == 0 {
		return errors.New("no scenario is configured")
	}

	reports := make([]*scenario.Report, len(cfg.Scenarios))
	errs := make([]error, len(cfg.Scenarios))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range cfg.Scenarios {
		sc := &cfg.Scenarios[i]
		g.Go(func() error {
			rp, err := m.runner.Run(ctx, sc)
			if err != nil {
				m.logger.Warn("scenario failed", zap.String("scenario", sc.Name), zap.Error(err))
				errs[i] = fmt.Errorf("scenario #%d %s, %w", i, sc.Name, err)
				return nil
			}
			reports[i] = rp
			return nil
		})
	}
	_ = g.Wait()

	var ok []*scenario.Report
	for _, rp := range reports {
		if rp != nil {
			ok = append(ok, rp)
		}
	}
	if err := m.w.Write(ok); err != nil {
		return fmt.Errorf("failed to write reports, %w", err)
	}
	return errors.Join(errs...)
}

func (m *Dlist) startHTTPServer(addr string) {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: m.httpAPIMux,
	}
	m.sc.Attach(func(closeSignal <-chan struct{}) error {
		errChan := make(chan error, 1)
		go func() {
			m.logger.Info("starting api http server", zap.String("addr", addr))
			errChan <- httpServer.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			return fmt.Errorf("api http server exited, %w", err)
		case <-closeSignal:
			return httpServer.Close()
		}
	})
}

func (m *Dlist) GetMetricsReg() prometheus.Registerer {
	return prometheus.WrapRegistererWithPrefix("dlist_", m.metricsReg)
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}
