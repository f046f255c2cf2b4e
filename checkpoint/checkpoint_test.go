package checkpoint

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(tst *testing.T) *Store {
	tst.Helper()
	s, err := Open(filepath.Join(tst.TempDir(), "checkpoint.db"))
	if err != nil {
		tst.Fatal(err)
	}
	tst.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(tst *testing.T) {
	s := openTestStore(tst)
	res := &Result{
		Path:      "input.fasta",
		Command:   "codons",
		Sequences: 2,
		Codons:    100,
		Ambiguous: 3,
		Dropped:   1,
		Finished:  time.Now(),
	}
	if err := s.Save(res); err != nil {
		tst.Fatal(err)
	}
	got, err := s.Load("codons", "input.fasta")
	if err != nil {
		tst.Fatal(err)
	}
	if got == nil {
		tst.Fatal("result not found after save")
	}
	if got.Codons != 100 || got.Sequences != 2 || got.Dropped != 1 {
		tst.Errorf("unexpected result %+v", got)
	}
}

func TestDone(tst *testing.T) {
	s := openTestStore(tst)
	if s.Done("codons", "input.fasta") {
		tst.Error("empty store should have nothing done")
	}
	if err := s.Save(&Result{Path: "input.fasta", Command: "codons"}); err != nil {
		tst.Fatal(err)
	}
	if !s.Done("codons", "input.fasta") {
		tst.Error("saved result not reported as done")
	}
	// same file under another command is a different key
	if s.Done("ac", "input.fasta") {
		tst.Error("results must be keyed per command")
	}
}

func TestNilStore(tst *testing.T) {
	var s *Store
	if err := s.Save(&Result{Path: "x", Command: "codons"}); err != nil {
		tst.Error("nil store Save should be a no-op")
	}
	if s.Done("codons", "x") {
		tst.Error("nil store has nothing done")
	}
	if err := s.Close(); err != nil {
		tst.Error("nil store Close should be a no-op")
	}
}
