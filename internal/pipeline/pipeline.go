package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/bulletin"
	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/cgsn-ops/ndbc-bulletin/internal/observability"
	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

// Source reads one station's raw observations reaching back to start.
type Source interface {
	Fetch(ctx context.Context, st station.Station, start time.Time) (domain.Observations, error)
}

// Uploader transfers finished bulletin files to the NDBC drop box.
type Uploader interface {
	Upload(ctx context.Context, paths []string) error
}

// Options carries the run parameters the pipeline takes from configuration.
type Options struct {
	OutputDir        string
	Lookback         time.Duration
	BinWidth         time.Duration
	RunInterval      time.Duration
	TransferProtocol string
}

// Pipeline turns raw buoy telemetry into one NDBC bulletin file per station
// per run and hands the batch to the uploader.
type Pipeline struct {
	source   Source
	uploader Uploader
	stations []station.Station
	logger   *slog.Logger
	metrics  *observability.Metrics
	opts     Options
	ready    atomic.Bool
}

// New creates a Pipeline. A nil uploader keeps bulletins local.
func New(source Source, uploader Uploader, stations []station.Station, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		source:   source,
		uploader: uploader,
		stations: stations,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
	}
}

// CheckReadiness returns nil once at least one run has completed, or an
// error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no completed runs yet")
	}
	return nil
}

// Run executes one run immediately, then repeats on the configured interval
// until the context is cancelled. A zero interval means run once and return.
// Runs never overlap: a tick that fires during a long run is consumed by it.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"stations", len(p.stations),
		"interval", p.opts.RunInterval,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	err := p.RunOnce(ctx)
	if p.opts.RunInterval == 0 {
		return err
	}
	if err != nil {
		p.logger.Error("run failed", "error", err)
	}

	ticker := clock.NewTicker(p.opts.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Error("run failed", "error", err)
			}
		}
	}
}

// RunOnce builds and writes every station's bulletin against a single run
// timestamp, then uploads the batch. A station that fails is logged and
// skipped so one silent buoy cannot block the others; the run itself fails
// only when every station does or the upload session does.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	began := clock.Now()
	now := began.UTC()
	start := now.Truncate(time.Hour).Add(-p.opts.Lookback)

	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(p.stations))
	failed := 0
	for _, st := range p.stations {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := p.buildBulletin(ctx, st, start, now)
		if err != nil {
			failed++
			p.metrics.StationRuns.WithLabelValues(st.ID, "error").Inc()
			p.logger.Error("station run failed", "station", st.ID, "error", err)
			continue
		}
		paths = append(paths, path)
		p.metrics.StationRuns.WithLabelValues(st.ID, "success").Inc()
	}

	var runErr error
	if failed > 0 && failed == len(p.stations) {
		runErr = fmt.Errorf("all %d stations failed", failed)
	} else {
		runErr = p.deliver(ctx, paths)
	}

	p.metrics.RunDuration.Observe(clock.Since(began).Seconds())
	p.metrics.LastRunTime.Set(float64(now.Unix()))

	if runErr != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return runErr
	}
	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.ready.Store(true)
	p.logger.Info("run complete",
		"bulletins", len(paths),
		"failed_stations", failed,
		"window_start", start,
	)
	return nil
}

// buildBulletin runs one station through fetch, aggregation, merge, and
// encode, and writes the bulletin file into the output directory.
func (p *Pipeline) buildBulletin(ctx context.Context, st station.Station, start, now time.Time) (string, error) {
	obs, err := p.source.Fetch(ctx, st, start)
	if err != nil {
		return "", fmt.Errorf("fetch observations: %w", err)
	}
	p.countSamples(st, obs)

	table := p.merge(st, obs).Window(start)

	path := filepath.Join(p.opts.OutputDir, bulletin.Filename(st.WMO, now))
	if err := os.WriteFile(path, bulletin.Encode(st, table), 0o644); err != nil {
		return "", fmt.Errorf("write bulletin: %w", err)
	}

	p.metrics.RowsEncoded.Add(float64(len(table)))
	p.metrics.BulletinsWritten.Inc()
	p.logger.Info("bulletin written",
		"station", st.ID,
		"wmo", st.WMO,
		"rows", len(table),
		"file", path,
	)
	return path, nil
}

// merge aggregates each instrument into clock-aligned bins, computes the
// derived channels from the binned means, and outer-joins the series.
func (p *Pipeline) merge(st station.Station, obs domain.Observations) domain.MergedTable {
	metbk1 := domain.DeriveMetbkBins(domain.BinMetbk(obs.Metbk1, p.opts.BinWidth), st.SensorHeight)
	var metbk2 []domain.MetbkBin
	if st.HasMetbk2 {
		metbk2 = domain.DeriveMetbkBins(domain.BinMetbk(obs.Metbk2, p.opts.BinWidth), st.SensorHeight)
	}
	wavss := domain.BinWavss(obs.Wavss, p.opts.BinWidth)
	return domain.Merge(metbk1, metbk2, wavss)
}

func (p *Pipeline) countSamples(st station.Station, obs domain.Observations) {
	p.metrics.SamplesParsed.WithLabelValues("metbk1").Add(float64(len(obs.Metbk1)))
	if st.HasMetbk2 {
		p.metrics.SamplesParsed.WithLabelValues("metbk2").Add(float64(len(obs.Metbk2)))
	}
	p.metrics.SamplesParsed.WithLabelValues("wavss").Add(float64(len(obs.Wavss)))
}

// deliver uploads the batch when a transfer protocol is configured.
func (p *Pipeline) deliver(ctx context.Context, paths []string) error {
	if p.uploader == nil || len(paths) == 0 {
		return nil
	}
	if err := p.uploader.Upload(ctx, paths); err != nil {
		p.metrics.Uploads.WithLabelValues(p.opts.TransferProtocol, "error").Inc()
		return fmt.Errorf("upload bulletins: %w", err)
	}
	p.metrics.Uploads.WithLabelValues(p.opts.TransferProtocol, "success").Inc()
	return nil
}
