// Command genlogs synthesizes METBK and WAVSS log trees in the layout the
// shore servers archive, so bulletind can be exercised against local data.
// The generated lines decode through the real parsers.
//
// Usage:
//
//	go run ./cmd/genlogs -root /tmp/cg-data -duration 4h -step 1m
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	root := flag.String("root", "", "data root to write station log trees under")
	ids := flag.String("stations", "", "comma-separated station ids (default all)")
	startFlag := flag.String("start", "", "first sample time, RFC3339 (default top of hour minus 4h)")
	span := flag.Duration("duration", 4*time.Hour, "span of telemetry to synthesize")
	step := flag.Duration("step", time.Minute, "sample cadence")
	flag.Parse()

	if *root == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -root")
	}

	start := time.Now().UTC().Truncate(time.Hour).Add(-4 * time.Hour)
	if *startFlag != "" {
		parsed, err := time.Parse(time.RFC3339, *startFlag)
		if err != nil {
			return fmt.Errorf("parse -start: %w", err)
		}
		start = parsed.UTC()
	}

	stations, err := station.Select(splitIDs(*ids))
	if err != nil {
		return err
	}

	for _, st := range stations {
		if err := writeStation(*root, st, start, *span, *step); err != nil {
			return fmt.Errorf("station %s: %w", st.ID, err)
		}
	}
	return nil
}

// writeStation lays out one buoy's deployment tree. METBK1 logs under a
// dcl11 directory, METBK2 and WAVSS under dcl12, matching the data logger
// assignments on the real moorings.
func writeStation(root string, st station.Station, start time.Time, span, step time.Duration) error {
	base := filepath.Join(root, st.ID, st.Deployment, "cg_data")

	if err := writeInstrument(filepath.Join(base, "dcl11", "metbk1"), "metbk1", metbkLine, start, span, step); err != nil {
		return err
	}
	if st.HasMetbk2 {
		if err := writeInstrument(filepath.Join(base, "dcl12", "metbk2"), "metbk2", metbkLine, start, span, step); err != nil {
			return err
		}
	}
	if err := writeInstrument(filepath.Join(base, "dcl12", "wavss"), "wavss", wavssLine, start, span, step); err != nil {
		return err
	}

	log.Printf("%s: wrote logs under %s", st.ID, base)
	return nil
}

// writeInstrument writes one log file per UTC day, named the way the data
// loggers name them (20240601.metbk1.log).
func writeInstrument(dir, suffix string, line func(time.Time, int) string, start time.Time, span, step time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := map[string][]string{}
	for i, ts := 0, start; ts.Before(start.Add(span)); i, ts = i+1, ts.Add(step) {
		name := ts.Format("20060102") + "." + suffix + ".log"
		files[name] = append(files[name], line(ts, i))
	}

	for name, lines := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func stamp(ts time.Time) string {
	return ts.UTC().Format("2006/01/02 15:04:05.000")
}

// metbkLine renders one METBK logger line: timestamp, the ten instrument
// channels, battery voltage. Values drift slowly so neighbouring bins differ.
func metbkLine(ts time.Time, i int) string {
	phase := float64(i) / 10
	return fmt.Sprintf("%s %.2f %.2f %.2f %.2f %.2f %.3f %.4f %.2f %.2f %.2f %.2f",
		stamp(ts),
		1014.0+1.5*math.Sin(phase),
		82.0+4.0*math.Sin(phase/3),
		11.0+0.8*math.Sin(phase/6),
		395.0+6.0*math.Sin(phase/2),
		0.0,
		12.5+0.3*math.Sin(phase/8),
		3.55+0.02*math.Sin(phase/5),
		210.0+40.0*math.Sin(phase/4),
		-3.0+1.2*math.Sin(phase/7),
		4.0+1.0*math.Cos(phase/7),
		12.6,
	)
}

// wavssLine renders one $TSPWA wave statistics sentence with a valid NMEA
// checksum. The position fields stay empty, as they do on the moorings.
func wavssLine(ts time.Time, i int) string {
	phase := float64(i) / 10
	sig := 1.4 + 0.5*math.Sin(phase/4)
	peak := 6.0 + 1.0*math.Sin(phase/5)

	body := fmt.Sprintf("TSPWA,%s,%s,05320,05320,,,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f",
		ts.UTC().Format("20060102"),
		ts.UTC().Format("150405"),
		230+i%20,
		0.7*sig,
		4.2+0.3*math.Sin(phase/6),
		1.7*sig,
		sig,
		5.2+0.4*math.Sin(phase/3),
		1.3*sig,
		6.0+0.5*math.Sin(phase/4),
		4.1+0.2*math.Sin(phase/2),
		peak,
		5.3+0.3*math.Sin(phase/7),
		sig,
		150.0+30.0*math.Sin(phase/9),
		40.0+5.0*math.Sin(phase/11),
	)
	return fmt.Sprintf("%s $%s*%02X", stamp(ts), body, nmeaChecksum(body))
}

func nmeaChecksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return sum
}

func splitIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
