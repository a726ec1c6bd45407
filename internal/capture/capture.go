package capture

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/pebble"
)

// Key layout in pebble's flat key space:
//
//	sess:<id>              -> JSON Session
//	chunk:<id>:<seq %08d>  -> raw bytes of one read
var (
	prefixSession = []byte("sess:")
	prefixChunk   = []byte("chunk:")
)

var ErrNotFound = errors.New("capture: session not found")

// Session describes one recorded probe.
type Session struct {
	ID       string    `json:"id"`
	Target   string    `json:"target"`
	Network  string    `json:"network"`
	Request  []byte    `json:"request"`
	Started  time.Time `json:"started"`
	Ended    time.Time `json:"ended,omitempty"`
	Chunks   int       `json:"chunks"`
	Bytes    int64     `json:"bytes"`
	EndError string    `json:"end_error,omitempty"`
}

type Store struct {
	db *pebble.DB
}

// Open opens or creates the capture store at path. With readOnly the
// directory must already exist.
func Open(path string, readOnly bool) (*Store, error) {
	if readOnly {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("capture store does not exist: %s", path)
		}
	}
	db, err := pebble.Open(path, &pebble.Options{ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open capture store %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func newID(now time.Time) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return now.UTC().Format("20060102T150405.000") + "-" + hex.EncodeToString(b)
}

func sessionKey(id string) []byte {
	return append(append([]byte{}, prefixSession...), id...)
}

func chunkPrefix(id string) []byte {
	k := append(append([]byte{}, prefixChunk...), id...)
	return append(k, ':')
}

func chunkKey(id string, seq int) []byte {
	return fmt.Appendf(chunkPrefix(id), "%08d", seq)
}

// upperBound returns the smallest key greater than every key with prefix p.
func upperBound(p []byte) []byte {
	end := append([]byte{}, p...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func (s *Store) putSession(sess *Session, opts *pebble.WriteOptions) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Set(sessionKey(sess.ID), data, opts)
}

// Session loads the metadata of one recorded session.
func (s *Store) Session(id string) (Session, error) {
	var sess Session
	data, closer, err := s.db.Get(sessionKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return sess, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return sess, err
	}
	defer closer.Close()
	if err := json.Unmarshal(data, &sess); err != nil {
		return sess, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return sess, nil
}

// Sessions lists every recorded session, oldest first.
func (s *Store) Sessions() ([]Session, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefixSession,
		UpperBound: upperBound(prefixSession),
	})
	if err != nil {
		return nil, fmt.Errorf("pebble iterator creation failed: %w", err)
	}
	defer iter.Close()

	var out []Session
	for iter.First(); iter.Valid(); iter.Next() {
		var sess Session
		if err := json.Unmarshal(iter.Value(), &sess); err != nil {
			return nil, fmt.Errorf("corrupt session %s: %w", iter.Key()[len(prefixSession):], err)
		}
		out = append(out, sess)
	}
	return out, iter.Error()
}

// Chunks calls fn for every chunk of session id in the order they were read.
func (s *Store) Chunks(id string, fn func(seq int, data []byte) error) error {
	p := chunkPrefix(id)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: p, UpperBound: upperBound(p)})
	if err != nil {
		return fmt.Errorf("pebble iterator creation failed: %w", err)
	}
	defer iter.Close()

	seq := 0
	for iter.First(); iter.Valid(); iter.Next() {
		data := append([]byte{}, iter.Value()...)
		if err := fn(seq, data); err != nil {
			return err
		}
		seq++
	}
	return iter.Error()
}
