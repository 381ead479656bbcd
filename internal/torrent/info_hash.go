package torrent

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"

	"github.com/zeebo/bencode"
)

type InfoHash [20]byte

func (ih InfoHash) String() string {
	return hex.EncodeToString(ih[:])
}

// infoHash hashes the exact bytes of the info dictionary as they appear in
// the file, which is what trackers and peers identify the torrent by.
func infoHash(data []byte) (InfoHash, error) {
	var raw struct {
		Info bencode.RawMessage `bencode:"info"`
	}
	if err := bencode.DecodeBytes(data, &raw); err != nil {
		return InfoHash{}, err
	}
	if len(raw.Info) == 0 {
		return InfoHash{}, errors.New("info dictionary not found")
	}

	return InfoHash(sha1.Sum(raw.Info)), nil
}
