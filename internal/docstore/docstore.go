// Package docstore persists whole JSON documents as files on local disk,
// one file per document key. Every write replaces the complete document,
// last writer wins.
package docstore

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/3reps/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

var ErrDocumentNotFound = errors.New("document not found")

type DiskStore struct {
	rootPath string
	mutex    sync.RWMutex
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}

	exists, err := pkg.PathExists(rootPath, true)
	if err != nil {
		return nil, fmt.Errorf("check root path %s: %w", rootPath, err)
	}
	if !exists {
		log.Debugf("document store root [%s] does not exist, creating ...", rootPath)
		if err := os.MkdirAll(rootPath, 0755); err != nil {
			return nil, fmt.Errorf("create root path %s: %w", rootPath, err)
		}
	}

	return &DiskStore{
		rootPath: rootPath,
	}, nil
}

func (ds *DiskStore) documentPath(key string) string {
	return path.Join(ds.rootPath, key+".json")
}

// Read returns the raw document bytes for the given key,
// or ErrDocumentNotFound if it was never written.
func (ds *DiskStore) Read(key string) ([]byte, error) {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	data, err := os.ReadFile(ds.documentPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the document under the given key. The new content is
// written to a temp file first, then moved over the old document, so a
// crash mid-write cannot leave a truncated document behind.
func (ds *DiskStore) Write(key string, data []byte) error {
	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	docPath := ds.documentPath(key)
	tmpPath := docPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, docPath); err != nil {
		return fmt.Errorf("replace document %s: %w", key, err)
	}

	log.Tracef("document [%s] saved, %d bytes", key, len(data))
	return nil
}
