// Package uploads stores images attached to category and product forms.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inventory/config"

	"github.com/google/uuid"
)

// Namer picks the stored filename for an uploaded file.
type Namer interface {
	Name(original string) string
}

// TimestampNamer names files after the upload time in milliseconds, keeping the extension.
type TimestampNamer struct {
	Now func() time.Time
}

func (n TimestampNamer) Name(original string) string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	return fmt.Sprintf("%d%s", now().UnixMilli(), strings.ToLower(filepath.Ext(original)))
}

// UUIDNamer names files with a random uuid, keeping the extension.
type UUIDNamer struct{}

func (UUIDNamer) Name(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}

// NamerFor returns the naming strategy configured by name.
func NamerFor(naming string) (Namer, error) {
	switch naming {
	case config.NamingTimestamp, "":
		return TimestampNamer{}, nil
	case config.NamingUUID:
		return UUIDNamer{}, nil
	}
	return nil, fmt.Errorf("unknown upload naming %q", naming)
}

// Store persists an uploaded file and returns the filename it was stored under.
type Store interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// DiskStore writes uploads into Dir.
type DiskStore struct {
	Dir   string
	Namer Namer
}

func NewDiskStore(dir string, namer Namer) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, Namer: namer}, nil
}

func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	filename := s.Namer.Name(fh.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filename, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", filename, err)
	}
	return filename, nil
}
