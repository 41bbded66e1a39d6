// Package logdir reads raw instrument logs from the shore-side data archive.
//
// The archive lays files out as <root>/<buoy>/<deployment>/... with the
// instrument identified by a directory name component, e.g.
//
//	GI01SUMO/D00010/cg_data/dcl11/metbk1/20240601.metbk1.log
//
// Directory names decide which stream a log belongs to: "metbk1" and
// "metbk2" name the two met packages, a bare "metbk" is an older layout
// for the primary, and "wavss" names the wave sensor.
package logdir

import (
	"bufio"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

const (
	kindMetbk1 = "metbk1"
	kindMetbk2 = "metbk2"
	kindWavss  = "wavss"
)

// Source reads instrument logs from a local directory tree.
// It implements pipeline.Source.
type Source struct {
	root     string
	maxFiles int
	logger   *slog.Logger
}

// New creates a log-directory source rooted at the archive mount.
// maxFiles bounds how many of the newest files are read per instrument.
func New(root string, maxFiles int, logger *slog.Logger) *Source {
	return &Source{root: root, maxFiles: maxFiles, logger: logger}
}

// Fetch reads and parses the station's most recent logs. A missing or
// empty deployment directory is not an error: the station simply has no
// observations and downstream emits placeholder messages.
func (s *Source) Fetch(ctx context.Context, st station.Station, start time.Time) (domain.Observations, error) {
	dir := filepath.Join(s.root, st.ID, st.Deployment)
	metbk1Files, metbk2Files, wavssFiles := s.discover(dir)

	metbk1Lines, err := s.readAll(ctx, lastN(metbk1Files, s.maxFiles))
	if err != nil {
		return domain.Observations{}, err
	}
	metbk2Lines, err := s.readAll(ctx, lastN(metbk2Files, s.maxFiles))
	if err != nil {
		return domain.Observations{}, err
	}
	wavssLines, err := s.readAll(ctx, lastN(wavssFiles, s.maxFiles))
	if err != nil {
		return domain.Observations{}, err
	}

	return domain.Observations{
		Metbk1: domain.ParseMetbk(metbk1Lines),
		Metbk2: domain.ParseMetbk(metbk2Lines),
		Wavss:  domain.ParseWavss(wavssLines, start),
	}, nil
}

// discover walks the deployment directory and collects .log paths per
// instrument, sorted lexically. Log files carry date-stamped names, so
// lexical order is chronological order.
func (s *Source) discover(dir string) (metbk1, metbk2, wavss []string) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != dir {
				s.logger.Warn("skipping unreadable archive path", "path", path, "error", err)
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".log") {
			return nil
		}
		switch classify(filepath.Dir(path)) {
		case kindMetbk1:
			metbk1 = append(metbk1, path)
		case kindMetbk2:
			metbk2 = append(metbk2, path)
		case kindWavss:
			wavss = append(wavss, path)
		}
		return nil
	})
	if walkErr != nil {
		s.logger.Warn("archive walk failed", "dir", dir, "error", walkErr)
	}

	sort.Strings(metbk1)
	sort.Strings(metbk2)
	sort.Strings(wavss)
	return metbk1, metbk2, wavss
}

// classify matches an instrument name component anywhere in the
// directory path. metbk1 is checked before the bare metbk fallback.
func classify(dir string) string {
	switch {
	case strings.Contains(dir, "metbk1"):
		return kindMetbk1
	case strings.Contains(dir, "metbk2"):
		return kindMetbk2
	case strings.Contains(dir, "metbk"):
		return kindMetbk1
	case strings.Contains(dir, "wavss"):
		return kindWavss
	default:
		return ""
	}
}

// lastN keeps the most recent n paths from a sorted list.
func lastN(paths []string, n int) []string {
	if len(paths) <= n {
		return paths
	}
	return paths[len(paths)-n:]
}

// readAll concatenates the lines of each file in order. A file that
// cannot be read is skipped whole so a truncated read cannot leave a
// partial file's lines behind.
func (s *Source) readAll(ctx context.Context, paths []string) ([]string, error) {
	var lines []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileLines, err := readLines(p)
		if err != nil {
			s.logger.Warn("skipping unreadable log", "path", p, "error", err)
			continue
		}
		lines = append(lines, fileLines...)
	}
	return lines, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
