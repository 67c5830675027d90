package persistance

import (
	"compress/gzip"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matst80/center-finder/pkg/types"
)

const DefaultFile = "data/snapshot.dbz"

// Persistance keeps the last good snapshot on disk as gzipped gob.
type Persistance struct {
	File string
}

func NewPersistance(file string) *Persistance {
	if file == "" {
		file = DefaultFile
	}
	return &Persistance{File: file}
}

func (p *Persistance) LoadSnapshot() (*types.Snapshot, error) {
	file, err := os.Open(p.File)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", p.File, err)
	}
	defer zipReader.Close()

	snapshot := &types.Snapshot{}
	if err = gob.NewDecoder(zipReader).Decode(snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", p.File, err)
	}
	return snapshot, nil
}

// SaveSnapshot writes to a temporary file and renames it into place.
func (p *Persistance) SaveSnapshot(snapshot *types.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(p.File), 0o755); err != nil {
		return err
	}
	tmp := p.File + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	zipWriter := gzip.NewWriter(file)
	if err = gob.NewEncoder(zipWriter).Encode(snapshot); err != nil {
		zipWriter.Close()
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err = zipWriter.Close(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p.File)
}

// Snapshot lets a persisted file stand in for the CMS.
func (p *Persistance) Snapshot(_ context.Context) (*types.Snapshot, error) {
	return p.LoadSnapshot()
}
