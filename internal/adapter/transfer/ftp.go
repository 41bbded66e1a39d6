package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/jlaffaye/ftp"
)

// FTP uploads bulletins to the drop box over plain FTP.
// It implements pipeline.Uploader.
type FTP struct {
	addr   string
	creds  Credentials
	logger *slog.Logger
}

// NewFTP validates the credentials and builds an FTP uploader.
func NewFTP(creds Credentials, logger *slog.Logger) (*FTP, error) {
	if creds.FTPHost == "" {
		return nil, fmt.Errorf("ftp credentials: no ftp host")
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("ftp credentials: username and password are required")
	}
	addr := creds.FTPHost
	if !strings.Contains(addr, ":") {
		addr += ":21"
	}
	return &FTP{addr: addr, creds: creds, logger: logger}, nil
}

// Upload opens one session and stores each file under its base name.
// A file that fails to transfer does not stop the rest; the failures
// come back joined so the run can be marked degraded.
func (f *FTP) Upload(ctx context.Context, paths []string) error {
	conn, err := ftp.Dial(f.addr, ftp.DialWithContext(ctx))
	if err != nil {
		return fmt.Errorf("ftp connect %s: %w: %v", f.addr, domain.ErrTransport, err)
	}
	defer conn.Quit()

	if err := conn.Login(f.creds.Username, f.creds.Password); err != nil {
		return fmt.Errorf("ftp login: %w: %v", domain.ErrTransport, err)
	}
	f.logger.Info("connected to ftp drop box", "host", f.addr)

	var errs *multierror.Error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.store(conn, path); err != nil {
			f.logger.Error("bulletin transfer failed", "file", path, "error", err)
			errs = multierror.Append(errs, err)
			continue
		}
		f.logger.Info("bulletin transferred", "file", path)
	}
	return errs.ErrorOrNil()
}

func (f *FTP) store(conn *ftp.ServerConn, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return conn.Stor(filepath.Base(path), file)
}
