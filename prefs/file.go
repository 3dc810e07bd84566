package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d0ngw/chanstat/stats"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the document in a json file
type FileStore struct {
	path string
}

// NewFileStore create FileStore, the directory of path is created if absent
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("no file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// LoadStatistics implements stats.Preferences.LoadStatistics
func (p *FileStore) LoadStatistics() (stats.Document, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// SaveStatistics implements stats.Preferences.SaveStatistics, the file is
// replaced by rename so a reader never sees a partial document
func (p *FileStore) SaveStatistics(doc stats.Document) (err error) {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.path)
}

// Close implements Store.Close
func (p *FileStore) Close() error {
	return nil
}
