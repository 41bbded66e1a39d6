package domain

import "errors"

// Sentinel errors classifying failures across the pipeline. Adapters wrap
// them with fmt.Errorf("...: %w", err) so callers can branch with errors.Is
// without string matching.
var (
	// ErrNoTimestamp marks a telemetry line carrying no logger timestamp.
	// Such lines cannot be placed in time and are dropped.
	ErrNoTimestamp = errors.New("no timestamp")

	// ErrMalformed marks input that exists but does not match the
	// expected grammar: an unparseable logger timestamp, a WAVSS sentence
	// with the wrong shape.
	ErrMalformed = errors.New("malformed input")

	// ErrNotFound marks a missing input: an unknown station id, no
	// deployment directory, a dataset with no rows.
	ErrNotFound = errors.New("not found")

	// ErrTransport marks an I/O failure talking to a remote system: a
	// tabledap request that failed or answered non-OK, an FTP or SFTP
	// session that could not be established. Sources degrade it to an
	// empty series; the uploader reports it to the run.
	ErrTransport = errors.New("transport failure")
)
