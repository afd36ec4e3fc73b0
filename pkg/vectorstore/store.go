package vectorstore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"notebookrag/pkg/apperror"
)

const collectionFile = "collection.db"

// Store manages one persistent vector collection per notebook. Each
// collection lives in its own directory under root, so deleting a notebook
// is deleting its directory.
type Store struct {
	root    string
	mu      sync.Mutex
	handles map[string]*Collection
}

func NewStore(root string) *Store {
	return &Store{
		root:    root,
		handles: make(map[string]*Collection),
	}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// CreateOrOpen returns the collection for name, creating its directory and
// database on first use. With reset, any existing collection is dropped
// first. Calling it twice without reset is a no-op on the stored data.
func (s *Store) CreateOrOpen(name string, reset bool) (*Collection, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if reset {
		if err := s.dropLocked(name); err != nil {
			return nil, err
		}
	} else if handle, ok := s.handles[name]; ok {
		return handle, nil
	}

	dir := s.Path(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.IO(err, "create collection directory for %s", name)
	}
	return s.openLocked(name, dir)
}

// Open returns the collection for an existing notebook and fails with a
// not-found error when its directory is absent.
func (s *Store) Open(name string) (*Collection, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.handles[name]; ok {
		return handle, nil
	}

	dir := s.Path(name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, apperror.NotFound("collection %s does not exist", name)
	}
	return s.openLocked(name, dir)
}

func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.IsDir()
}

// List returns the names of all collections on disk, sorted.
func (s *Store) List() ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.IO(err, "list collections in %s", s.root)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a collection and reports whether one existed. Removal is
// tolerant of the directory disappearing concurrently, so two racing
// deletes both finish without error.
func (s *Store) Delete(name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existed := s.Exists(name)
	if err := s.dropLocked(name); err != nil {
		return existed, err
	}
	return existed, nil
}

func (s *Store) dropLocked(name string) error {
	if handle, ok := s.handles[name]; ok {
		if db, err := handle.db.DB(); err == nil {
			_ = db.Close()
		}
		delete(s.handles, name)
	}
	if err := os.RemoveAll(s.Path(name)); err != nil {
		return apperror.IO(err, "remove collection directory for %s", name)
	}
	return nil
}

func (s *Store) openLocked(name, dir string) (*Collection, error) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, collectionFile)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperror.IO(err, "open collection database for %s", name)
	}
	if err := db.AutoMigrate(&entryModel{}, &metaModel{}); err != nil {
		return nil, apperror.IO(err, "migrate collection schema for %s", name)
	}
	if err := db.Where(metaModel{Key: metaDistance}).
		Attrs(metaModel{Value: distanceCosine}).
		FirstOrCreate(&metaModel{}).Error; err != nil {
		return nil, apperror.IO(err, "record distance metric for %s", name)
	}

	handle := &Collection{name: name, db: db}
	s.handles[name] = handle
	return handle, nil
}

func validateName(name string) error {
	if name == "" {
		return apperror.Validation("collection name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return apperror.Validation("collection name %q must not contain path separators", name)
	}
	return nil
}
