// Package erddap reads observations from an ERDDAP tabledap service.
//
// Dataset ids follow the dashboard convention <station>-BUOY-<instrument>,
// e.g. GI01SUMO-BUOY-METBK-01-1. Requests constrain on the station's
// deployment and the window start. Responses are ERDDAP's CSV form with
// two header rows, variable names then units.
package erddap

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

const (
	metbk1Instrument = "METBK-01-1"
	metbk2Instrument = "METBK-02-1"
	wavssInstrument  = "WAVSS-01-1"

	timeLayout = "2006-01-02T15:04:05Z"
)

var metbkVars = []string{
	"time",
	"barometric_pressure",
	"relative_humidity",
	"air_temperature",
	"longwave_irradiance",
	"precipitation",
	"sea_surface_temperature",
	"sea_surface_conductivity",
	"shortwave_irradiance",
	"eastward_wind_velocity",
	"northward_wind_velocity",
}

var wavssVars = []string{
	"time",
	"significant_wave_height",
	"significant_wave_period",
	"mean_wave_direction",
}

// Client reads station observations from an ERDDAP server.
// It implements pipeline.Source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an ERDDAP tabledap client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads each instrument's series for the station. A dataset
// that is missing, empty, or erroring yields no samples rather than
// failing the station: the server drops deployments between recoveries
// and the bulletins must keep flowing with placeholders.
func (c *Client) Fetch(ctx context.Context, st station.Station, start time.Time) (domain.Observations, error) {
	obs := domain.Observations{
		Metbk1: c.fetchMetbk(ctx, st, metbk1Instrument, start),
	}
	if st.HasMetbk2 {
		obs.Metbk2 = c.fetchMetbk(ctx, st, metbk2Instrument, start)
	}
	obs.Wavss = c.fetchWavss(ctx, st, start)

	if err := ctx.Err(); err != nil {
		return domain.Observations{}, err
	}
	if len(obs.Wavss) == 0 {
		obs.Wavss = domain.PlaceholderWavss(start)
	}
	return obs, nil
}

func (c *Client) fetchMetbk(ctx context.Context, st station.Station, instrument string, start time.Time) []domain.MetbkSample {
	t, err := c.fetchTable(ctx, datasetID(st, instrument), metbkVars, st.Deployment, start)
	if err != nil {
		c.logger.Warn("erddap request failed", "dataset", datasetID(st, instrument), "error", err)
		return nil
	}
	return metbkSamples(t)
}

func (c *Client) fetchWavss(ctx context.Context, st station.Station, start time.Time) []domain.WavssSample {
	t, err := c.fetchTable(ctx, datasetID(st, wavssInstrument), wavssVars, st.Deployment, start)
	if err != nil {
		c.logger.Warn("erddap request failed", "dataset", datasetID(st, wavssInstrument), "error", err)
		return nil
	}
	return wavssSamples(t)
}

func datasetID(st station.Station, instrument string) string {
	return st.ID + "-BUOY-" + instrument
}

// table is a decoded tabledap CSV response: variable indexes plus the
// data rows that follow the name and unit headers.
type table struct {
	index map[string]int
	rows  [][]string
}

// fetchTable issues one tabledap request. ERDDAP answers a constraint
// that matches nothing with 404, which is a normal empty result here.
func (c *Client) fetchTable(ctx context.Context, dataset string, vars []string, deployment string, start time.Time) (*table, error) {
	fullURL := fmt.Sprintf("%s/tabledap/%s.csv?%s&deploy_id=%%22%s%%22&time%%3E=%s",
		c.baseURL, dataset, strings.Join(vars, ","), deployment, start.UTC().Format(timeLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tabledap request: %w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &table{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, body)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(records) < 2 {
		return &table{}, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	return &table{index: index, rows: records[2:]}, nil
}

func (t *table) timeAt(row []string) (time.Time, bool) {
	i, ok := t.index["time"]
	if !ok || i >= len(row) {
		return time.Time{}, false
	}
	ts, err := time.Parse(timeLayout, row[i])
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}

func (t *table) value(row []string, name string) float64 {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func metbkSamples(t *table) []domain.MetbkSample {
	var out []domain.MetbkSample
	for _, row := range t.rows {
		ts, ok := t.timeAt(row)
		if !ok {
			continue
		}
		out = append(out, domain.MetbkSample{
			Time:                   ts,
			BarometricPressure:     t.value(row, "barometric_pressure"),
			RelativeHumidity:       t.value(row, "relative_humidity"),
			AirTemperature:         t.value(row, "air_temperature"),
			LongwaveIrradiance:     t.value(row, "longwave_irradiance"),
			Precipitation:          t.value(row, "precipitation"),
			SeaSurfaceTemperature:  t.value(row, "sea_surface_temperature"),
			SeaSurfaceConductivity: t.value(row, "sea_surface_conductivity"),
			ShortwaveIrradiance:    t.value(row, "shortwave_irradiance"),
			EastwardWind:           t.value(row, "eastward_wind_velocity"),
			NorthwardWind:          t.value(row, "northward_wind_velocity"),
		})
	}
	return out
}

func wavssSamples(t *table) []domain.WavssSample {
	var out []domain.WavssSample
	for _, row := range t.rows {
		ts, ok := t.timeAt(row)
		if !ok {
			continue
		}
		s := nanWavssSample(ts)
		s.SignificantWaveHeight = t.value(row, "significant_wave_height")
		s.SignificantPeriod = t.value(row, "significant_wave_period")
		s.MeanDirection = t.value(row, "mean_wave_direction")
		out = append(out, s)
	}
	return out
}

// nanWavssSample fills the channels the tabledap datasets do not carry.
func nanWavssSample(ts time.Time) domain.WavssSample {
	nan := math.NaN()
	return domain.WavssSample{
		Time:                  ts,
		InstrumentDate:        nan,
		InstrumentTime:        nan,
		InstrumentSerial:      nan,
		ZeroCrossings:         nan,
		AverageWaveHeight:     nan,
		MeanSpectralPeriod:    nan,
		MaximumWaveHeight:     nan,
		SignificantWaveHeight: nan,
		SignificantPeriod:     nan,
		TenthHighestHeight:    nan,
		TenthHighestPeriod:    nan,
		MeanWavePeriod:        nan,
		PeakPeriod:            nan,
		TP5:                   nan,
		HMO:                   nan,
		MeanDirection:         nan,
		MeanSpread:            nan,
	}
}
