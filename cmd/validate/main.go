// Command validate checks finished bulletin files against the station
// registry: document framing, element order, timestamps, and value sanity.
// It exits nonzero when any check fails, so the transfer cron can refuse
// to ship a malformed batch.
//
// Usage:
//
//	go run ./cmd/validate /mnt/cg-data/ndbc/44078_20240601021000.xml ...
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

const dateLayout = "01/02/2006 15:04:05"

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s bulletin.xml [bulletin.xml ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(flag.Args()))
}

func run(paths []string) int {
	fmt.Println("=== NDBC Bulletin Validation ===")
	fmt.Println()

	files := make([]*bulletinFile, 0, len(paths))
	for _, path := range paths {
		f, err := loadBulletin(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", path, err)
			return 1
		}
		files = append(files, f)
	}

	structure := &phase{name: "Phase 1: Document Structure"}
	registry := &phase{name: "Phase 2: Station Conformance"}
	dates := &phase{name: "Phase 3: Timestamps"}
	values := &phase{name: "Phase 4: Value Sanity"}

	for _, f := range files {
		f.messages = parseMessages(f, structure)
		validateStation(f, registry)
		validateDates(f, dates)
		validateValues(f, values)
	}

	phases := []*phase{structure, registry, dates, values}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
	}

	messages := 0
	for _, f := range files {
		messages += len(f.messages)
	}
	fmt.Println()
	fmt.Printf("Checked: %d file(s), %d message(s)\n", len(files), messages)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

type message struct {
	line     int
	station  string
	date     string
	missing  string
	round    string
	elements []element
}

type element struct {
	line  int
	name  string
	value string
}

type bulletinFile struct {
	path     string
	wmo      string // from the filename
	lines    []string
	messages []message
}

func loadBulletin(path string) (*bulletinFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	wmo, _, ok := strings.Cut(base, "_")
	if !ok {
		return nil, fmt.Errorf("filename %q is not <WMO>_<timestamp>.xml", base)
	}

	return &bulletinFile{
		path:  path,
		wmo:   wmo,
		lines: strings.Split(strings.TrimRight(string(data), "\n"), "\n"),
	}, nil
}

// ── Phase 1: Document Structure ──
// The ingest reads these files line by line, so framing is checked the
// same way: declaration first, then balanced message and met blocks.

var elementRe = regexp.MustCompile(`^\s*<([a-z0-9]+)>([^<]*)</([a-z0-9]+)>$`)

func parseMessages(f *bulletinFile, p *phase) []message {
	ef := func(line int, format string, args ...any) {
		p.errorf("%s line %d: "+format, append([]any{f.path, line}, args...)...)
	}

	if len(f.lines) == 0 || f.lines[0] != `<?xml version="1.0" encoding="ISO-8859-1"?>` {
		ef(1, "missing or wrong XML declaration")
		return nil
	}

	var msgs []message
	var cur *message
	inMet := false

	for i, raw := range f.lines[1:] {
		n := i + 2
		switch strings.TrimSpace(raw) {
		case "<message>":
			if cur != nil {
				ef(n, "<message> opened inside another message")
				continue
			}
			cur = &message{line: n}
		case "</message>":
			if cur == nil {
				ef(n, "</message> without matching <message>")
				continue
			}
			if inMet {
				ef(n, "</message> before </met>")
				inMet = false
			}
			msgs = append(msgs, *cur)
			cur = nil
		case "<met>":
			if cur == nil {
				ef(n, "<met> outside any message")
				continue
			}
			inMet = true
		case "</met>":
			inMet = false
		case "":
		default:
			m := elementRe.FindStringSubmatch(raw)
			if m == nil || m[1] != m[3] {
				ef(n, "unparseable line %q", raw)
				continue
			}
			if cur == nil {
				ef(n, "<%s> outside any message", m[1])
				continue
			}
			if inMet {
				cur.elements = append(cur.elements, element{line: n, name: m[1], value: m[2]})
				continue
			}
			switch m[1] {
			case "station":
				cur.station = m[2]
			case "date":
				cur.date = m[2]
			case "missing":
				cur.missing = m[2]
			case "roundtime":
				cur.round = m[2]
			default:
				ef(n, "unexpected header element <%s>", m[1])
			}
		}
	}

	if cur != nil {
		ef(len(f.lines), "unterminated <message>")
	}
	return msgs
}

// ── Phase 2: Station Conformance ──
// Every message must carry the filename's WMO id, the fixed metadata, and
// the station's element table in declared order.

func validateStation(f *bulletinFile, p *phase) {
	st, ok := stationByWMO(f.wmo)
	if !ok {
		p.errorf("%s: no registered station has WMO id %s", f.path, f.wmo)
		return
	}

	want := make([]string, len(st.Tags))
	for i, tag := range st.Tags {
		want[i] = tag.Name
	}
	wantSeq := strings.Join(want, ",")

	for _, msg := range f.messages {
		if msg.station != st.WMO {
			p.errorf("%s line %d: station %q, want %q", f.path, msg.line, msg.station, st.WMO)
		}
		if msg.missing != "-9999" {
			p.errorf("%s line %d: missing sentinel %q, want -9999", f.path, msg.line, msg.missing)
		}
		if msg.round != "no" {
			p.errorf("%s line %d: roundtime %q, want no", f.path, msg.line, msg.round)
		}

		got := make([]string, len(msg.elements))
		for i, el := range msg.elements {
			got[i] = el.name
		}
		if gotSeq := strings.Join(got, ","); gotSeq != wantSeq {
			p.errorf("%s line %d: element order\n      got:  %s\n      want: %s", f.path, msg.line, gotSeq, wantSeq)
		}
	}
}

// ── Phase 3: Timestamps ──

func validateDates(f *bulletinFile, p *phase) {
	var prev time.Time
	for i, msg := range f.messages {
		ts, err := time.Parse(dateLayout, msg.date)
		if err != nil {
			p.errorf("%s line %d: date %q does not parse as MM/DD/YYYY HH:MM:SS", f.path, msg.line, msg.date)
			continue
		}
		if i > 0 && !ts.After(prev) {
			p.errorf("%s line %d: date %s not after previous message's %s",
				f.path, msg.line, ts.Format(dateLayout), prev.Format(dateLayout))
		}
		prev = ts
	}
}

// ── Phase 4: Value Sanity ──
// Constants must carry exactly their configured value; measured elements
// are either the missing sentinel or inside crude physical bounds.

type bounds struct{ lo, hi float64 }

var elementBounds = map[string]bounds{
	"atmp":  {-60, 60},    // air temperature, degC
	"baro":  {850, 1090},  // sea level pressure, mbar
	"lwrad": {0, 800},     // longwave irradiance, W m-2
	"rrh":   {0, 100},     // relative humidity, percent
	"srad":  {0, 1600},    // shortwave irradiance, W m-2
	"wspd":  {0, 90},      // wind speed, m s-1
	"wdir":  {0, 360},     // wind direction, deg
	"wtmp":  {-5, 45},     // sea surface temperature, degC
	"tp0":   {-5, 45},     // hull temperature, degC
	"sp0":   {0, 42},      // practical salinity
	"dompd": {0, 30},      // significant period, s
	"mwdir": {0, 360},     // mean wave direction, deg
	"wvhgt": {0, 30},      // significant wave height, m
}

func validateValues(f *bulletinFile, p *phase) {
	st, ok := stationByWMO(f.wmo)
	if !ok {
		return // phase 2 already reported it
	}

	constants := map[string]string{}
	for _, tag := range st.Tags {
		if tag.Column == "" {
			constants[tag.Name] = strconv.FormatFloat(tag.Default, 'f', -1, 64)
		}
	}

	for _, msg := range f.messages {
		for _, el := range msg.elements {
			v, err := strconv.ParseFloat(el.value, 64)
			if err != nil {
				p.errorf("%s line %d: <%s> value %q is not numeric", f.path, el.line, el.name, el.value)
				continue
			}
			if want, ok := constants[el.name]; ok {
				if el.value != want {
					p.errorf("%s line %d: constant <%s> is %q, want %s", f.path, el.line, el.name, el.value, want)
				}
				continue
			}
			if v == station.Missing {
				continue
			}
			if b, ok := boundsFor(el.name); ok && (v < b.lo || v > b.hi) {
				p.errorf("%s line %d: <%s> value %g outside [%g, %g]", f.path, el.line, el.name, v, b.lo, b.hi)
			}
		}
	}
}

func boundsFor(name string) (bounds, bool) {
	for prefix, b := range elementBounds {
		if strings.HasPrefix(name, prefix) {
			return b, true
		}
	}
	return bounds{}, false
}

// ── Helpers ──

func stationByWMO(wmo string) (station.Station, bool) {
	for _, st := range station.All() {
		if st.WMO == wmo {
			return st, true
		}
	}
	return station.Station{}, false
}
