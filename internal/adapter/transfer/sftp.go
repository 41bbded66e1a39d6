package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SFTP uploads bulletins over SSH using private key authentication.
// It implements pipeline.Uploader.
type SFTP struct {
	addr   string
	config *ssh.ClientConfig
	logger *slog.Logger
}

// NewSFTP validates the credentials, loads the private key, and builds
// an SFTP uploader. The credentials password, when set, is the key's
// passphrase.
func NewSFTP(creds Credentials, logger *slog.Logger) (*SFTP, error) {
	if creds.Host == "" {
		return nil, fmt.Errorf("sftp credentials: no host")
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("sftp credentials: no username")
	}
	if creds.PrivateKeyFile == "" {
		return nil, fmt.Errorf("sftp credentials: no private key file")
	}

	keyBytes, err := os.ReadFile(creds.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	var signer ssh.Signer
	if creds.Password != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(creds.Password))
	} else {
		signer, err = ssh.ParsePrivateKey(keyBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	// Without a known_hosts file, unknown host keys are accepted, as
	// these transfers have always done.
	hostKeys := ssh.InsecureIgnoreHostKey()
	if creds.KnownHostsFile != "" {
		hostKeys, err = knownhosts.New(creds.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("load known hosts: %w", err)
		}
	}

	addr := creds.Host
	if !strings.Contains(addr, ":") {
		addr += ":22"
	}

	return &SFTP{
		addr: addr,
		config: &ssh.ClientConfig{
			User:            creds.Username,
			Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
			HostKeyCallback: hostKeys,
			Timeout:         30 * time.Second,
		},
		logger: logger,
	}, nil
}

// Upload opens one session and puts each file under its base name in
// the remote working directory.
func (s *SFTP) Upload(ctx context.Context, paths []string) error {
	conn, err := ssh.Dial("tcp", s.addr, s.config)
	if err != nil {
		return fmt.Errorf("ssh connect %s: %w: %v", s.addr, domain.ErrTransport, err)
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return fmt.Errorf("open sftp session: %w: %v", domain.ErrTransport, err)
	}
	defer client.Close()
	s.logger.Info("connected to sftp drop box", "host", s.addr)

	var errs *multierror.Error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.put(client, path); err != nil {
			s.logger.Error("bulletin transfer failed", "file", path, "error", err)
			errs = multierror.Append(errs, err)
			continue
		}
		s.logger.Info("bulletin transferred", "file", path)
	}
	return errs.ErrorOrNil()
}

func (s *SFTP) put(client *sftp.Client, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := client.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
