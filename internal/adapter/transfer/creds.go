// Package transfer delivers bulletin files to the NDBC drop box over
// FTP or SFTP.
package transfer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Credentials holds the drop-box login, loaded from a YAML file kept
// outside the repository. The FTP and SFTP files share a layout except
// for the host key: FTP files name theirs "ftp", SFTP files "host".
// For SFTP the password is the private key passphrase, and an optional
// known_hosts_file turns on host key verification.
type Credentials struct {
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	FTPHost        string `yaml:"ftp"`
	Host           string `yaml:"host"`
	PrivateKeyFile string `yaml:"private_key_file"`
	KnownHostsFile string `yaml:"known_hosts_file"`
}

// LoadCredentials reads and parses a credentials file.
func LoadCredentials(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	var creds Credentials
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}
