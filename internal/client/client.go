package client

import (
	"log/slog"
	"sync"

	"github.com/jensmcatanho/hermes/internal/torrent"
)

// Client keeps the torrents added during a session, in insertion order
type Client struct {
	logger   *slog.Logger
	torrents []*torrent.Torrent
	mutex    sync.RWMutex
}

// New creates an empty client. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger}
}

// Add builds a torrent from the file at path and appends it. On failure the
// registry is unchanged and the error is returned as produced.
func (c *Client) Add(path string) (*torrent.Torrent, error) {
	t, err := torrent.Open(path)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.torrents = append(c.torrents, t)
	count := len(c.torrents)
	c.mutex.Unlock()

	c.logger.Debug("torrent added",
		"path", path,
		"info_hash", t.InfoHash.String(),
		"pieces", t.PieceCount(),
		"files", len(t.Files),
		"torrents", count)

	return t, nil
}

// Torrents returns all added torrents
func (c *Client) Torrents() []*torrent.Torrent {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	torrents := make([]*torrent.Torrent, len(c.torrents))
	copy(torrents, c.torrents)
	return torrents
}

// Len returns the number of added torrents
func (c *Client) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.torrents)
}
