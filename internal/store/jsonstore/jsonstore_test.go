package jsonstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolists/internal/model"
)

func sampleLists() []model.List {
	groceries := model.NewList("Groceries")
	groceries.Add("Buy milk")
	id := groceries.Add("Call dentist")
	it, _ := groceries.Item(id)
	it.Completed = true

	// transient state must not leak into the file
	groceries.Input = "half typed"
	groceries.Dirty = true
	groceries.Items[0].Editing = true

	return []model.List{groceries, model.NewList("Empty")}
}

type plainItem struct {
	Name      string
	Completed bool
}

type plainList struct {
	Name  string
	Items []plainItem
}

func plain(lists []model.List) []plainList {
	out := make([]plainList, 0, len(lists))
	for _, l := range lists {
		pl := plainList{Name: l.Name, Items: []plainItem{}}
		for _, it := range l.Items {
			pl.Items = append(pl.Items, plainItem{Name: it.Name, Completed: it.Completed})
		}
		out = append(out, pl)
	}
	return out
}

func TestSaveAndLoad(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", FileName))
	lists := sampleLists()

	require.NoError(t, s.Save(lists))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, plain(lists), plain(loaded))

	for _, l := range loaded {
		assert.Empty(t, l.Input)
		assert.False(t, l.Dirty)
		for _, it := range l.Items {
			assert.False(t, it.Editing)
			assert.NotEqual(t, it.ID, lists[0].Items[0].ID)
		}
	}
}

func TestSaveFormat(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, s.Save(sampleLists()[:1]))

	b, err := os.ReadFile(s.Path)
	require.NoError(t, err)

	want := `[
  {
    "todo_items": [
      {
        "completed": false,
        "name": "Buy milk"
      },
      {
        "completed": true,
        "name": "Call dentist"
      }
    ],
    "name": "Groceries"
  }
]`
	assert.Equal(t, want, string(b))
}

func TestSaveIsIdempotent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	lists := sampleLists()

	require.NoError(t, s.Save(lists))
	first, err := os.ReadFile(s.Path)
	require.NoError(t, err)

	require.NoError(t, s.Save(lists))
	second, err := os.ReadFile(s.Path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, s.Save(nil))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))

	_, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var pe *PersistError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, OpLoad, pe.Op)
	assert.Equal(t, "Failed to read config file", pe.Message())
}

func TestLoadParseErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":        `[{"name": "x", `,
		"not an array":     `{"name": "x", "todo_items": []}`,
		"list no name":     `[{"todo_items": []}]`,
		"list no items":    `[{"name": "x"}]`,
		"item no name":     `[{"name": "x", "todo_items": [{"completed": true}]}]`,
		"item no complete": `[{"name": "x", "todo_items": [{"name": "a"}]}]`,
		"wrong type":       `[{"name": "x", "todo_items": [{"name": "a", "completed": "yes"}]}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), FileName))
			require.NoError(t, os.WriteFile(s.Path, []byte(doc), 0o644))

			_, err := s.Load()
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	doc := `[{"name": "Work", "important": true, "todo_items": [{"name": "a", "completed": true, "important": false}]}]`
	require.NoError(t, os.WriteFile(s.Path, []byte(doc), 0o644))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Work", loaded[0].Name)
	require.Len(t, loaded[0].Items, 1)
	assert.True(t, loaded[0].Items[0].Completed)
}

func TestLoadMatchesKeysExactly(t *testing.T) {
	cases := map[string]string{
		"other type":      `[{"name": "Work", "NAME": 7, "todo_items": [{"name": "a", "completed": true, "Completed": "no"}]}]`,
		"same type after": `[{"name": "Work", "Name": "Other", "todo_items": [{"name": "a", "NAME": "b", "completed": true}]}]`,
		"same type first": `[{"Name": "Other", "name": "Work", "todo_items": [{"NAME": "b", "name": "a", "completed": true}]}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), FileName))
			require.NoError(t, os.WriteFile(s.Path, []byte(doc), 0o644))

			loaded, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, []plainList{{Name: "Work", Items: []plainItem{{Name: "a", Completed: true}}}}, plain(loaded))
		})
	}
}

func TestSaveReplacesFileWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, FileName))
	require.NoError(t, os.WriteFile(s.Path, []byte("previous content that is longer than nothing"), 0o600))

	require.NoError(t, s.Save(nil))

	b, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
	assert.Equal(t, FileName, entries[0].Name())
}

func TestSaveWriteError(t *testing.T) {
	dir := t.TempDir()
	// a regular file where the parent directory should be
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := New(filepath.Join(blocker, FileName))
	err := s.Save(sampleLists())
	assert.ErrorIs(t, err, ErrWrite)

	var pe *PersistError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, OpSave, pe.Op)
}

func TestResolvePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	p, err := ResolvePath()
	require.NoError(t, err)
	assert.Equal(t, FileName, filepath.Base(p))
}

func TestResolvePathUnavailable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	_, err := ResolvePath()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPath)

	var pe *PersistError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, OpPath, pe.Op)
	assert.Equal(t, "Could not get config directory", pe.Message())
}

func TestPersistErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		kind error
		want string
	}{
		{ErrPath, "Could not get config directory"},
		{ErrCompose, "Failed to compose json data"},
		{ErrWrite, "Failed to write to save file"},
		{ErrRead, "Failed to read config file"},
		{ErrParse, "Failed to parse config data"},
	}
	for _, tc := range cases {
		err := fail(OpSave, tc.kind, cause)
		assert.ErrorIs(t, err, tc.kind)
		assert.ErrorIs(t, err, cause)

		var pe *PersistError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, tc.want, pe.Message())
		assert.Contains(t, pe.Error(), "boom")
	}
}

func TestFlushDropsLaterSaves(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	final := sampleLists()[:1]

	require.NoError(t, s.Flush(final))
	// a stale snapshot arriving after the final write
	require.NoError(t, s.Save(nil))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, plain(final), plain(loaded))
}
