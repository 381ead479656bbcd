package torrent

import (
	"github.com/anacrolix/torrent/metainfo"
)

// Magnet returns a magnet URI carrying the info hash, name and trackers.
func (t *Torrent) Magnet() string {
	m := metainfo.Magnet{
		InfoHash:    metainfo.Hash(t.InfoHash),
		Trackers:    t.Trackers,
		DisplayName: t.Name,
	}
	return m.String()
}
