package jsonstore

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolists/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// One process writes it; Save calls are serialized by the Store.

// FileName is the data file inside the user config directory.
const FileName = "todo_config.json"

//go:embed schema.json
var schemaText string

var schema = jsonschema.MustCompileString("todo_config.schema.json", schemaText)

// ResolvePath returns <user config dir>/todo_config.json.
func ResolvePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fail(OpPath, ErrPath, err)
	}
	return filepath.Join(dir, FileName), nil
}

// Store reads and writes the list collection at Path.
type Store struct {
	Path string

	mu     sync.Mutex
	sealed bool
}

func New(path string) *Store {
	return &Store{Path: path}
}

// Load reads the file and decodes it. Every list and item gets a fresh ID.
func (s *Store) Load() ([]model.List, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fail(OpLoad, ErrRead, err)
	}
	lists, err := decode(b)
	if err != nil {
		return nil, fail(OpLoad, ErrParse, err)
	}
	model.AssignIDs(lists)
	return lists, nil
}

// Save overwrites the file with the given lists. Transient fields are not written.
// After Flush it does nothing.
func (s *Store) Save(lists []model.List) error {
	return s.save(lists, false)
}

// Flush writes lists as the last save of the process. Saves still in
// flight on other goroutines hold older snapshots and are dropped.
func (s *Store) Flush(lists []model.List) error {
	return s.save(lists, true)
}

func (s *Store) save(lists []model.List, seal bool) error {
	b, err := encode(lists)
	if err != nil {
		return fail(OpSave, ErrCompose, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return nil
	}
	s.sealed = seal
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fail(OpSave, ErrWrite, fmt.Errorf("mkdir: %w", err))
	}
	if err := writeAtomic(s.Path, b); err != nil {
		return fail(OpSave, ErrWrite, err)
	}
	return nil
}

// writeAtomic writes to a temp file in the same directory and renames it
// over path, so a crash never leaves a half-written file behind.
func writeAtomic(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func encode(lists []model.List) ([]byte, error) {
	if lists == nil {
		lists = []model.List{}
	}
	b, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// decode validates the document shape before unmarshalling, since
// encoding/json alone accepts missing fields. Keys are matched exactly;
// encoding/json folds case, which would let "Name" overwrite "name".
func decode(b []byte) ([]model.List, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var raw []object
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	lists := make([]model.List, 0, len(raw))
	for _, ro := range raw {
		var (
			l     model.List
			items []object
		)
		if err := ro.field("name", &l.Name); err != nil {
			return nil, err
		}
		if err := ro.field("todo_items", &items); err != nil {
			return nil, err
		}
		l.Items = make([]model.Item, 0, len(items))
		for _, ri := range items {
			var it model.Item
			if err := ri.field("name", &it.Name); err != nil {
				return nil, err
			}
			if err := ri.field("completed", &it.Completed); err != nil {
				return nil, err
			}
			l.Items = append(l.Items, it)
		}
		lists = append(lists, l)
	}
	return lists, nil
}

type object map[string]json.RawMessage

func (o object) field(key string, v any) error {
	raw, ok := o[key]
	if !ok {
		return fmt.Errorf("missing field %q", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}
