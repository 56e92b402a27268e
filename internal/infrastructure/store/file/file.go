// Package file persists session slots in a single JSON document on disk,
// surviving application restarts. Writes go through a temp file and rename;
// the file is created with mode 0600. With a passphrase configured the
// document is sealed with ChaCha20-Poly1305 under an scrypt-derived key.
//
// Per the ports.KeyValueStore contract the store never returns errors: an
// unreadable or undecryptable file reads as empty and failed writes are
// logged and dropped, degrading to "never authenticated".
package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

type Store struct {
	mu         sync.Mutex
	path       string
	passphrase string
	log        zerolog.Logger
}

// New returns a Store writing to path. An empty passphrase stores the
// document in plaintext.
func New(path, passphrase string, log zerolog.Logger) *Store {
	return &Store{path: path, passphrase: passphrase, log: log}
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.load()[key]
	return v, ok
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := s.load()
	slots[key] = value
	s.save(slots)
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := s.load()
	if _, ok := slots[key]; !ok {
		return
	}
	delete(slots, key)
	s.save(slots)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("cannot remove session file")
	}
}

func (s *Store) load() map[string]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("cannot read session file")
		}
		return map[string]string{}
	}
	if s.passphrase != "" {
		raw, err = open(raw, s.passphrase)
		if err != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("cannot decrypt session file")
			return map[string]string{}
		}
	}
	slots := map[string]string{}
	if err := json.Unmarshal(raw, &slots); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("session file is corrupt")
		return map[string]string{}
	}
	return slots
}

func (s *Store) save(slots map[string]string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot serialise session slots")
		return
	}
	if s.passphrase != "" {
		raw, err = seal(raw, s.passphrase)
		if err != nil {
			s.log.Error().Err(err).Msg("cannot encrypt session slots")
			return
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("cannot create session directory")
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		s.log.Warn().Err(err).Str("path", tmp).Msg("cannot write session file")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("cannot replace session file")
	}
}
