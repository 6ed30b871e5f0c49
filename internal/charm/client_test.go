// ABOUTME: Unit tests for Charm-based wellness storage.
// ABOUTME: Uses an in-memory KV so CRUD and sync behavior run without a Charm server.
package charm

import (
	"errors"
	"io"
	iofs "io/fs"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
)

// memKV is an in-memory kvStore.
type memKV struct {
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Set(key, value []byte) error {
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (m *memKV) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memKV) Keys() ([][]byte, error) {
	var keys []string
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out, nil
}

func (m *memKV) Sync() error      { m.syncs++; return nil }
func (m *memKV) Reset() error     { m.data = make(map[string][]byte); return nil }
func (m *memKV) Close() error     { return nil }
func (m *memKV) IsReadOnly() bool { return m.readOnly }

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func TestKeyPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"Habit", HabitPrefix, "habit:"},
		{"HabitEntry", HabitEntryPrefix, "habit_entry:"},
		{"Cycle", CyclePrefix, "cycle:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.prefix)
			}
		})
	}

	if strings.HasPrefix(HabitEntryPrefix, HabitPrefix) {
		t.Error("habit entry keys must not match the habit prefix")
	}
}

func TestHabitCRUDWithCascade(t *testing.T) {
	store := newMemKV()
	c := newClient(store)

	h := models.NewHabit("Water", 8)
	if err := c.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if store.syncs == 0 {
		t.Error("expected auto-sync after write")
	}

	got, err := c.GetHabit(h.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != "Water" {
		t.Errorf("Name = %q, want Water", got.Name)
	}

	first := models.NewHabitEntry(h.ID, day(2024, 5, 6))
	second := models.NewHabitEntry(h.ID, day(2024, 5, 6))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	for _, e := range []*models.HabitEntry{second, first} {
		if err := c.AddHabitEntry(e); err != nil {
			t.Fatalf("AddHabitEntry failed: %v", err)
		}
	}

	entries, err := c.ListHabitEntries(h.ID, day(2024, 5, 6))
	if err != nil {
		t.Fatalf("ListHabitEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != first.ID {
		t.Errorf("entries not oldest first: %+v", entries)
	}

	if err := c.DeleteHabit(h.ID.String()); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if len(store.data) != 0 {
		t.Errorf("keys left after cascade delete: %d", len(store.data))
	}
}

func TestAddHabitEntryMissingHabit(t *testing.T) {
	c := newClient(newMemKV())
	e := models.NewHabitEntry(models.NewHabit("ghost", 1).ID, time.Now())
	if err := c.AddHabitEntry(e); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AddHabitEntry = %v, want ErrNotFound", err)
	}
}

func TestCyclesSortedAndDeleted(t *testing.T) {
	c := newClient(newMemKV())
	older := models.NewCycle(day(2024, 2, 1))
	newer := models.NewCycle(day(2024, 3, 1)).WithSymptoms([]string{"Acne"})
	_ = c.CreateCycle(older)
	_ = c.CreateCycle(newer)

	cycles, err := c.ListCycles(0)
	if err != nil {
		t.Fatalf("ListCycles failed: %v", err)
	}
	if len(cycles) != 2 || cycles[0].ID != newer.ID {
		t.Fatalf("cycles not most recent first")
	}
	if len(cycles[0].Symptoms) != 1 {
		t.Errorf("Symptoms = %v, want [Acne]", cycles[0].Symptoms)
	}

	if err := c.DeleteCycle(older.ID.String()[:8]); err != nil {
		t.Fatalf("DeleteCycle failed: %v", err)
	}
	if _, err := c.GetCycle(older.ID.String()); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCycle after delete = %v, want ErrNotFound", err)
	}
}

func TestProfileKeepsCreatedAt(t *testing.T) {
	c := newClient(newMemKV())
	if _, err := c.GetProfile(); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetProfile = %v, want ErrNotFound", err)
	}

	p := models.NewProfile("Ada")
	p.CreatedAt = day(2020, 1, 1)
	if err := c.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := c.SaveProfile(&models.Profile{FullName: "Ada King"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := c.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.FullName != "Ada King" || !got.CreatedAt.Equal(day(2020, 1, 1)) {
		t.Errorf("profile = %+v, want Ada King created 2020-01-01", got)
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	store := newMemKV()
	store.readOnly = true
	c := newClient(store)

	if err := c.CreateHabit(models.NewHabit("Walk", 1)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("CreateHabit = %v, want ErrReadOnly", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode = %v, want nil", err)
	}
}

func TestWipe(t *testing.T) {
	c := newClient(newMemKV())
	_ = c.CreateHabit(models.NewHabit("Walk", 1))
	_ = c.CreateCycle(models.NewCycle(day(2024, 1, 1)))

	n, err := c.Wipe()
	if err != nil {
		t.Fatalf("Wipe failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Wipe deleted %d keys, want 2", n)
	}
}

// memFS is an in-memory fileWriter.
type memFS struct {
	files map[string][]byte
}

func (m *memFS) WriteFile(name string, src iofs.File) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	m.files[name] = data
	return nil
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, iofs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Remove(name string) error {
	delete(m.files, name)
	return nil
}

func TestPhotoStoreSavePhoto(t *testing.T) {
	mfs := &memFS{files: make(map[string][]byte)}
	ps := &PhotoStore{fs: mfs}

	url, err := ps.SavePhoto("me.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	if url != "charm:profile-photos/me.png" {
		t.Errorf("url = %q", url)
	}

	data, err := ps.ReadPhoto("me.png")
	if err != nil || string(data) != "png" {
		t.Errorf("ReadPhoto = %q, %v", data, err)
	}

	if err := ps.RemovePhoto("me.png"); err != nil {
		t.Fatalf("RemovePhoto failed: %v", err)
	}
	if _, err := ps.ReadPhoto("me.png"); err == nil {
		t.Error("expected error reading removed photo")
	}
}
