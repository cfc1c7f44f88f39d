package entry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const ext = ".md"

var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidTitle = errors.New("invalid entry title")
)

type Storage interface {
	ListTitles() ([]string, error)
	Get(title string) ([]byte, error)
	Exists(title string) (bool, error)
	Save(title string, body []byte) error
}

// StorageImpl keeps one <title>.md file per entry in dir. Writes are not
// serialized: concurrent saves of the same title race at the filesystem.
type StorageImpl struct {
	dir string
}

func Connect(dir string) (*StorageImpl, error) {
	if dir == "" {
		return nil, errors.New("entries dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create entries dir %q", dir)
	}
	return &StorageImpl{dir}, nil
}

func (s *StorageImpl) ListTitles() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read entries dir %q", s.dir)
	}
	titles := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ext) {
			continue
		}
		title := strings.TrimSuffix(f.Name(), ext)
		if title == "" {
			continue
		}
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles, nil
}

func (s *StorageImpl) Get(title string) ([]byte, error) {
	path, err := s.path(title)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "get %q", title)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read entry %q", title)
	}
	return body, nil
}

func (s *StorageImpl) Exists(title string) (bool, error) {
	path, err := s.path(title)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "stat entry %q", title)
	}
	return !info.IsDir(), nil
}

func (s *StorageImpl) Save(title string, body []byte) error {
	path, err := s.path(title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return errors.Wrapf(err, "write entry %q", title)
	}
	return nil
}

func (s *StorageImpl) path(title string) (string, error) {
	if err := ValidateTitle(title); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, title+ext), nil
}

// ValidateTitle rejects titles that cannot map to a single file in the
// entries dir.
func ValidateTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return errors.Wrap(ErrInvalidTitle, "empty title")
	case title == "." || title == "..":
		return errors.Wrapf(ErrInvalidTitle, "reserved title %q", title)
	case strings.ContainsAny(title, `/\`):
		return errors.Wrapf(ErrInvalidTitle, "title %q contains a path separator", title)
	case strings.ContainsRune(title, 0):
		return errors.Wrapf(ErrInvalidTitle, "title %q contains a NUL byte", title)
	}
	return nil
}
