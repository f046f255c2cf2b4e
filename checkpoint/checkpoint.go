// Package checkpoint stores per-file batch results so an aborted run
// over many input files can resume without recomputing finished ones.
package checkpoint

import (
	"encoding/json"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("checkpoint")

// MAIN is the bucket name for all results.
var MAIN = []byte("results")

// Result stores the summary of one analysed input file.
type Result struct {
	Path      string    `json:"path"`
	Command   string    `json:"command"`
	Sequences int       `json:"sequences"`
	Codons    int       `json:"codons"`
	Ambiguous int       `json:"ambiguous"`
	Dropped   int       `json:"dropped"`
	Finished  time.Time `json:"finished"`
}

// Store records per-file results in a bolt database. A nil Store is
// valid and records nothing.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a checkpoint database.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// key identifies one (command, file) pair.
func key(command, path string) []byte {
	return []byte(command + "\x00" + path)
}

// Save records the result for one input file.
func (s *Store) Save(res *Result) error {
	if s == nil || s.db == nil {
		return nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		log.Error("Error serializing result", err)
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MAIN)
		if err != nil {
			return err
		}
		return b.Put(key(res.Command, res.Path), data)
	})
	if err != nil {
		log.Error("Error saving result", err)
	}
	return err
}

// Load returns the stored result for a (command, file) pair, or nil
// if there is none.
func (s *Store) Load(command, path string) (*Result, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MAIN)
		if b == nil {
			return nil
		}
		if v := b.Get(key(command, path)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	res := &Result{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Done reports whether a (command, file) pair has a recorded result.
func (s *Store) Done(command, path string) bool {
	res, err := s.Load(command, path)
	if err != nil {
		log.Error("Error loading result", err)
		return false
	}
	if res != nil {
		log.Noticef("Found finished result for %s (%d sequences)", path, res.Sequences)
	}
	return res != nil
}
