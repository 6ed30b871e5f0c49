// ABOUTME: Tests for the markdown store file layout and frontmatter helpers.
// ABOUTME: Backend-neutral CRUD behavior is covered in repository_test.go.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/agewell/internal/models"
)

func TestMarkdownHabitFileLayout(t *testing.T) {
	store := setupTestMarkdownStore(t)

	h := models.NewHabit("Drink 8 glasses of water", 8)
	if err := store.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := store.AddHabitEntry(models.NewHabitEntry(h.ID, day(2024, 5, 6))); err != nil {
		t.Fatalf("AddHabitEntry failed: %v", err)
	}

	path := filepath.Join(store.dataDir, "habits", "drink-8-glasses-of-water-"+h.ID.String()[:8]+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected habit file at %s: %v", path, err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("habit file does not start with frontmatter:\n%s", content)
	}
	if !strings.Contains(content, "completed_date: \"2024-05-06\"") && !strings.Contains(content, "completed_date: 2024-05-06") {
		t.Errorf("habit file missing embedded entry:\n%s", content)
	}
}

func TestMarkdownCycleFileLayout(t *testing.T) {
	store := setupTestMarkdownStore(t)

	c := models.NewCycle(day(2024, 3, 1)).WithNotes("first day heavy")
	if err := store.CreateCycle(c); err != nil {
		t.Fatalf("CreateCycle failed: %v", err)
	}

	path := filepath.Join(store.dataDir, "cycles", "2024", "2024-03-01-"+c.ID.String()[:8]+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected cycle file at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "\nfirst day heavy\n") {
		t.Errorf("cycle notes not written as body:\n%s", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file perms = %o, want 600", perm)
	}
}

func TestMarkdownHandEditedFileIsRead(t *testing.T) {
	store := setupTestMarkdownStore(t)

	doc := "---\nid: 3f2a1b4c-0000-4000-8000-000000000001\nname: Stretch\ntarget_frequency: 2\ncreated_at: \"2024-05-01T08:00:00.000000000Z\"\n---\n"
	dir := filepath.Join(store.dataDir, "habits")
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stretch.md"), []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	h, err := store.GetHabit("3f2a1b4c")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if h.Name != "Stretch" || h.TargetFrequency != 2 {
		t.Errorf("got %q/%d, want Stretch/2", h.Name, h.TargetFrequency)
	}
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantHeader string
		wantBody   string
	}{
		{"with body", "---\na: 1\n---\n\nhello\n", "a: 1", "\nhello\n"},
		{"no body", "---\na: 1\n---\n", "a: 1", ""},
		{"no frontmatter", "just text", "", "just text"},
		{"unterminated", "---\na: 1\n", "", "---\na: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := parseFrontmatter(tt.in)
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestRenderFrontmatterRoundTrip(t *testing.T) {
	fm := profileFrontmatter{FullName: "Ada", CreatedAt: "x", UpdatedAt: "y"}
	content, err := renderFrontmatter(&fm, "\nbody\n")
	if err != nil {
		t.Fatalf("renderFrontmatter failed: %v", err)
	}
	header, body := parseFrontmatter(content)
	if !strings.Contains(header, "full_name: Ada") {
		t.Errorf("header = %q, want full_name", header)
	}
	if strings.TrimSpace(body) != "body" {
		t.Errorf("body = %q, want body", body)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Drink 8 glasses of water", "drink-8-glasses-of-water"},
		{"  Regular   meals! ", "regular-meals"},
		{"***", "untitled"},
		{"Café Au Lait", "café-au-lait"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()
	if nonEmpty, err := IsDirNonEmpty(dir); err != nil || nonEmpty {
		t.Errorf("IsDirNonEmpty(empty) = %v, %v", nonEmpty, err)
	}
	if nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing")); err != nil || nonEmpty {
		t.Errorf("IsDirNonEmpty(missing) = %v, %v", nonEmpty, err)
	}
	_ = os.WriteFile(filepath.Join(dir, "f"), nil, 0600)
	if nonEmpty, err := IsDirNonEmpty(dir); err != nil || !nonEmpty {
		t.Errorf("IsDirNonEmpty(non-empty) = %v, %v", nonEmpty, err)
	}
}
