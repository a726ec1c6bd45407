package capture

import (
	"time"

	"github.com/cockroachdb/pebble"
)

// Recorder appends the chunks of one session. It is not safe for concurrent use.
type Recorder struct {
	s    *Store
	sess Session
}

// Begin registers a new session and returns its recorder.
func (s *Store) Begin(target, network string, request []byte) (*Recorder, error) {
	now := time.Now()
	r := &Recorder{s: s, sess: Session{
		ID:      newID(now),
		Target:  target,
		Network: network,
		Request: request,
		Started: now,
	}}
	if err := s.putSession(&r.sess, pebble.Sync); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) ID() string { return r.sess.ID }

// Append stores a copy of data as the next chunk.
func (r *Recorder) Append(data []byte) error {
	if err := r.s.db.Set(chunkKey(r.sess.ID, r.sess.Chunks), data, pebble.NoSync); err != nil {
		return err
	}
	r.sess.Chunks++
	r.sess.Bytes += int64(len(data))
	return nil
}

// Finish records the end of the session and flushes it to disk.
func (r *Recorder) Finish(endErr error) error {
	r.sess.Ended = time.Now()
	if endErr != nil {
		r.sess.EndError = endErr.Error()
	}
	return r.s.putSession(&r.sess, pebble.Sync)
}
