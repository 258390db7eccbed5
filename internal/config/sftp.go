package config

// This file resolves SFTP settings from the process environment, with
// optional dotenv loading. Settings are read only when the upload stage
// actually runs, and handed to the transfer client as an explicit value so
// secret handling stays out of the pipeline control flow.

import (
	"fmt"
	"net"
	"os"
	"path"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names consumed by [LoadSFTP].
const (
	EnvSFTPHostname   = "SFTP_HOSTNAME"
	EnvSFTPPort       = "SFTP_PORT"
	EnvSFTPUsername   = "SFTP_USERNAME"
	EnvSFTPPassword   = "SFTP_PASSWORD"
	EnvSFTPRemotePath = "SFTP_REMOTE_PATH"
)

// defaultSFTPPort is used when SFTP_PORT is unset.
const defaultSFTPPort = 22

// SFTPConfig holds the parameters for one upload session. It is constructed
// by [LoadSFTP] and passed around by value; the password is never logged.
type SFTPConfig struct {
	Hostname   string
	Port       int
	Username   string
	Password   string
	RemotePath string // Remote directory the archive is uploaded into.
}

// LoadSFTP reads the SFTP settings from the environment. When envFile is
// non-empty that dotenv file is loaded first (and must exist); otherwise a
// ./.env file is loaded best-effort. Missing mandatory variables produce a
// descriptive configuration error; in particular an unset SFTP_REMOTE_PATH
// fails here, before any connection attempt.
func LoadSFTP(envFile string) (SFTPConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return SFTPConfig{}, fmt.Errorf("load env file: %w", err)
		}
	} else {
		// Best effort: a missing ./.env just means settings come from the
		// ambient environment.
		_ = godotenv.Load()
	}

	cfg := SFTPConfig{
		Hostname:   os.Getenv(EnvSFTPHostname),
		Port:       defaultSFTPPort,
		Username:   os.Getenv(EnvSFTPUsername),
		Password:   os.Getenv(EnvSFTPPassword),
		RemotePath: os.Getenv(EnvSFTPRemotePath),
	}

	if raw := os.Getenv(EnvSFTPPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return SFTPConfig{}, fmt.Errorf("invalid %s %q (use a TCP port number)", EnvSFTPPort, raw)
		}
		cfg.Port = port
	}

	if cfg.Hostname == "" {
		return SFTPConfig{}, fmt.Errorf("%s environment variable is not set", EnvSFTPHostname)
	}
	if cfg.Username == "" {
		return SFTPConfig{}, fmt.Errorf("%s environment variable is not set", EnvSFTPUsername)
	}
	if cfg.Password == "" {
		return SFTPConfig{}, fmt.Errorf("%s environment variable is not set", EnvSFTPPassword)
	}
	if cfg.RemotePath == "" {
		return SFTPConfig{}, fmt.Errorf(
			"%s environment variable is not set; set it to the desired remote directory path (e.g. /remote/datasets/)",
			EnvSFTPRemotePath)
	}
	return cfg, nil
}

// Addr returns the host:port dial address.
func (s SFTPConfig) Addr() string {
	return net.JoinHostPort(s.Hostname, strconv.Itoa(s.Port))
}

// RemoteFile returns the remote destination path for an uploaded file name.
func (s SFTPConfig) RemoteFile(name string) string {
	return path.Join(s.RemotePath, name)
}
