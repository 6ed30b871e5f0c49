// ABOUTME: Tests for CLI commands and helpers.
// ABOUTME: Runs commands through the root command against a temporary SQLite database.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/agewell/internal/config"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupTestCLI points XDG_DATA_HOME and XDG_CONFIG_HOME at a temp dir and
// opens the database the commands will use.
func setupTestCLI(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("AGEWELL_BACKEND", "")

	testDB, err := storage.Open(filepath.Join(tmpDir, "agewell", "agewell.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = closeService()
		testDB.Close()
	})
	return testDB
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmdHasCommands(t *testing.T) {
	want := []string{"bmi", "insurance", "habit", "cycle", "meal-plan", "chat", "profile",
		"export", "import", "migrate", "mcp", "serve", "remind", "sync", "install-skill"}

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	for _, name := range []string{"backend", "data-dir", "log-level", "log-format"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestBMICmd(t *testing.T) {
	setupTestCLI(t)

	out, err := run(t, "", "bmi", "--height", "170", "--weight", "65", "--age", "30")
	if err != nil {
		t.Fatalf("bmi command failed: %v", err)
	}
	if !strings.Contains(out, "22.5") || !strings.Contains(out, "Normal Weight") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Recommendations") {
		t.Errorf("expected recommendations in output:\n%s", out)
	}
}

func TestBMICmdUsesProfileAge(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "profile", "set", "--name", "Asha", "--dob", "1950-01-01"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	out, err := run(t, "", "bmi", "--height", "170", "--weight", "72")
	if err != nil {
		t.Fatalf("bmi command failed: %v", err)
	}
	if !strings.Contains(out, "Healthy Range for Seniors") {
		t.Errorf("expected senior category, got:\n%s", out)
	}
}

func TestBMICmdInvalidInput(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "bmi", "--height", "0", "--weight", "65", "--age", "30"); err == nil {
		t.Error("Expected error for zero height")
	}
	if _, err := run(t, "", "bmi", "--height", "170", "--weight", "65", "--age", "-1"); err == nil {
		t.Error("Expected error for negative age")
	}
}

func TestInsuranceCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := run(t, "", "insurance", "--premium", "5000", "--age", "45",
		"--smoking", "never", "--exercise", "regular", "--practice", "Balanced Diet", "--bmi", "23")
	if err != nil {
		t.Fatalf("insurance command failed: %v", err)
	}
	for _, want := range []string{"Risk reduction", "Monthly savings", "₹", "Risk score"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "", "insurance", "--premium", "5000", "--smoking", "sometimes"); err == nil {
		t.Error("Expected error for unknown smoking status")
	}
	if _, err := run(t, "", "insurance", "--premium", "0", "--age", "40"); err == nil {
		t.Error("Expected error for zero premium")
	}
}

func TestHabitFlow(t *testing.T) {
	testDB := setupTestCLI(t)

	out, err := run(t, "", "habit", "list")
	if err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	if !strings.Contains(out, "Created 3 starter habits") {
		t.Errorf("expected starter habits:\n%s", out)
	}

	if _, err := run(t, "", "habit", "add", "Stretch", "--target", "2", "--category", "fitness"); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habits, err := testDB.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 4 {
		t.Fatalf("Expected 4 habits, got %d", len(habits))
	}
	stretch := habits[3]
	id := stretch.ID.String()[:8]

	for i := 0; i < 3; i++ {
		if _, err := run(t, "", "habit", "done", id); err != nil {
			t.Fatalf("habit done failed: %v", err)
		}
	}
	entries, _ := testDB.ListHabitEntries(stretch.ID, models.Today())
	if len(entries) != 2 {
		t.Errorf("Expected completions capped at 2, got %d", len(entries))
	}

	out, err = run(t, "", "habit", "done", id)
	if err != nil {
		t.Fatalf("habit done failed: %v", err)
	}
	if !strings.Contains(out, "target already reached") {
		t.Errorf("expected cap notice:\n%s", out)
	}

	if _, err := run(t, "", "habit", "undo", id); err != nil {
		t.Fatalf("habit undo failed: %v", err)
	}
	entries, _ = testDB.ListHabitEntries(stretch.ID, models.Today())
	if len(entries) != 1 {
		t.Errorf("Expected 1 completion after undo, got %d", len(entries))
	}

	out, err = run(t, "", "habit", "progress")
	if err != nil {
		t.Fatalf("habit progress failed: %v", err)
	}
	if !strings.Contains(out, "Overall") || !strings.Contains(out, "Stretch") {
		t.Errorf("unexpected progress output:\n%s", out)
	}

	if _, err := run(t, "", "habit", "delete", id); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if _, err := testDB.GetHabit(stretch.ID.String()); err == nil {
		t.Error("Expected habit to be deleted")
	}
}

func TestHabitDateFlag(t *testing.T) {
	testDB := setupTestCLI(t)

	h := models.NewHabit("Walk", 1)
	if err := testDB.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if _, err := run(t, "", "habit", "done", h.ID.String()[:8], "--date", "2024-05-06"); err != nil {
		t.Fatalf("habit done failed: %v", err)
	}
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	entries, _ := testDB.ListHabitEntries(h.ID, day)
	if len(entries) != 1 {
		t.Errorf("Expected 1 completion on 2024-05-06, got %d", len(entries))
	}

	if _, err := run(t, "", "habit", "done", h.ID.String()[:8], "--date", "06/05/2024"); err == nil {
		t.Error("Expected error for bad date")
	}
}

func TestHabitDoneUnknown(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "habit", "done", "deadbeef"); err == nil {
		t.Error("Expected error for unknown habit")
	}
}

func TestHabitAddInvalidTarget(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "habit", "add", "Nothing", "--target", "0"); err == nil {
		t.Error("Expected error for zero target")
	}
}

func TestCycleFlow(t *testing.T) {
	testDB := setupTestCLI(t)

	out, err := run(t, "", "cycle", "predict")
	if err != nil {
		t.Fatalf("cycle predict failed: %v", err)
	}
	if !strings.Contains(out, "Log at least one cycle") {
		t.Errorf("expected empty state:\n%s", out)
	}

	starts := []string{"2024-01-05", "2024-02-02", "2024-03-01", "2024-03-29"}
	for i, start := range starts {
		args := []string{"cycle", "add", start, "--period", "5"}
		if i < len(starts)-1 {
			args = append(args, "--end", starts[i+1])
		}
		if i == 0 {
			args = append(args, "--symptom", "Cramps", "--mood", "Tired")
		}
		if _, err := run(t, "", args...); err != nil {
			t.Fatalf("cycle add failed: %v", err)
		}
	}

	out, err = run(t, "", "cycle", "predict")
	if err != nil {
		t.Fatalf("cycle predict failed: %v", err)
	}
	for _, want := range []string{"Fri 26 Apr 2024", "Wed 1 May 2024", "28 days", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("prediction missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "", "cycle", "list")
	if err != nil {
		t.Fatalf("cycle list failed: %v", err)
	}
	if !strings.Contains(out, "2024-03-29") || !strings.Contains(out, "Cramps") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	cycles, _ := testDB.ListCycles(0)
	if _, err := run(t, "", "cycle", "delete", cycles[0].ID.String()[:8]); err != nil {
		t.Fatalf("cycle delete failed: %v", err)
	}
	cycles, _ = testDB.ListCycles(0)
	if len(cycles) != 3 {
		t.Errorf("Expected 3 cycles after delete, got %d", len(cycles))
	}
}

func TestCycleAddInvalid(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "cycle", "add", "yesterday"); err == nil {
		t.Error("Expected error for bad start date")
	}
	if _, err := run(t, "", "cycle", "add", "2024-05-10", "--end", "2024-05-01"); err == nil {
		t.Error("Expected error for end before start")
	}
}

func TestMealPlanCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := run(t, "", "meal-plan", "--age-group", "50-69", "--diet", "Heart-Healthy", "--condition", "Hypertension")
	if err != nil {
		t.Fatalf("meal-plan command failed: %v", err)
	}
	for _, want := range []string{"BREAKFAST", "SNACK", "Shopping list", "Hypertension"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "", "meal-plan", "--age-group", "50-69"); err == nil {
		t.Error("Expected error without a diet")
	}
}

func TestChatCmdOneShot(t *testing.T) {
	setupTestCLI(t)

	out, err := run(t, "", "chat", "what", "helps", "my", "heart?")
	if err != nil {
		t.Fatalf("chat command failed: %v", err)
	}
	if !strings.Contains(out, "omega-3") {
		t.Errorf("expected heart answer:\n%s", out)
	}
}

func TestChatCmdInteractive(t *testing.T) {
	setupTestCLI(t)

	out, err := run(t, "how much protein?\n\nexit\n", "chat")
	if err != nil {
		t.Fatalf("chat command failed: %v", err)
	}
	if !strings.Contains(out, "AGE-WELL Diet assistant") {
		t.Errorf("expected greeting:\n%s", out)
	}
	if !strings.Contains(out, "1.0-1.2 grams") {
		t.Errorf("expected protein answer:\n%s", out)
	}
}

func TestProfileCmds(t *testing.T) {
	testDB := setupTestCLI(t)

	out, err := run(t, "", "profile", "show")
	if err != nil {
		t.Fatalf("profile show failed: %v", err)
	}
	if !strings.Contains(out, "No profile yet") {
		t.Errorf("expected empty state:\n%s", out)
	}

	if _, err := run(t, "", "profile", "set", "--dob", "1950-01-01"); err == nil {
		t.Error("Expected error for a profile without a name")
	}

	if _, err := run(t, "", "profile", "set", "--name", "Asha Rao", "--dob", "1950-01-01", "--gender", "female"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if _, err := run(t, "", "profile", "set", "--email", "asha@example.com"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	p, err := testDB.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.FullName != "Asha Rao" || p.Email != "asha@example.com" || p.DateOfBirth == nil {
		t.Errorf("profile = %+v", p)
	}

	out, err = run(t, "", "profile", "show")
	if err != nil {
		t.Fatalf("profile show failed: %v", err)
	}
	if !strings.Contains(out, "Asha Rao") || !strings.Contains(out, "age") {
		t.Errorf("unexpected profile output:\n%s", out)
	}
}

func TestProfilePhotoCmd(t *testing.T) {
	testDB := setupTestCLI(t)

	if _, err := run(t, "", "profile", "set", "--name", "Asha"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	photo := filepath.Join(t.TempDir(), "me.png")
	if err := os.WriteFile(photo, []byte("png"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "profile", "photo", photo); err != nil {
		t.Fatalf("profile photo failed: %v", err)
	}

	p, _ := testDB.GetProfile()
	if p.PhotoURL == nil || !strings.HasPrefix(*p.PhotoURL, "file://") {
		t.Errorf("PhotoURL = %v", p.PhotoURL)
	}
}

func TestExportCmd(t *testing.T) {
	testDB := setupTestCLI(t)
	h := models.NewHabit("Walk", 1)
	_ = testDB.CreateHabit(h)
	_ = testDB.AddHabitEntry(models.NewHabitEntry(h.ID, models.Today()))

	for _, format := range []string{"json", "yaml", "markdown"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "", "export", format)
			if err != nil {
				t.Fatalf("export %s failed: %v", format, err)
			}
			if !strings.Contains(out, "Walk") {
				t.Errorf("export %s missing habit:\n%s", format, out)
			}
		})
	}

	if _, err := run(t, "", "export", "invalid"); err == nil {
		t.Error("Expected error for invalid export format")
	}
	if _, err := run(t, "", "export", "markdown", "--since", "May 1"); err == nil {
		t.Error("Expected error for bad --since")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	testDB := setupTestCLI(t)
	h := models.NewHabit("Walk", 1)
	_ = testDB.CreateHabit(h)
	_ = testDB.CreateCycle(models.NewCycle(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	backup := filepath.Join(t.TempDir(), "backup.json")
	if _, err := run(t, "", "export", "json", "--output", backup); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("Expected export file: %v", err)
	}

	otherDir := t.TempDir()
	if _, err := run(t, "", "import", backup, "--data-dir", otherDir); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	imported, err := storage.Open(filepath.Join(otherDir, "agewell.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer imported.Close()
	got, _ := imported.GetHabit(h.ID.String())
	if got == nil || got.Name != "Walk" {
		t.Errorf("imported habit = %+v", got)
	}
	cycles, _ := imported.ListCycles(0)
	if len(cycles) != 1 {
		t.Errorf("Expected 1 imported cycle, got %d", len(cycles))
	}
}

func TestMigrateCmd(t *testing.T) {
	testDB := setupTestCLI(t)
	_ = testDB.CreateHabit(models.NewHabit("Walk", 1))

	out, err := run(t, "", "migrate", "--from", "sqlite", "--to", "markdown")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "Habits: 1") {
		t.Errorf("unexpected output:\n%s", out)
	}

	dataDir := filepath.Join(os.Getenv("XDG_DATA_HOME"), "agewell")
	md, err := storage.NewMarkdownStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	habits, _ := md.ListHabits()
	if len(habits) != 1 {
		t.Errorf("Expected 1 migrated habit, got %d", len(habits))
	}

	if _, err := run(t, "", "migrate", "--from", "sqlite", "--to", "markdown"); err == nil {
		t.Error("Expected error migrating into a non-empty destination")
	}
	if _, err := run(t, "", "migrate", "--from", "sqlite", "--to", "sqlite"); err == nil {
		t.Error("Expected error for identical backends")
	}
}

func TestMigrateSwitchSavesBackend(t *testing.T) {
	testDB := setupTestCLI(t)
	_ = testDB.CreateHabit(models.NewHabit("Walk", 1))

	out, err := run(t, "", "migrate", "--from", "sqlite", "--to", "markdown", "--switch")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "Switched backend to markdown") {
		t.Errorf("unexpected output:\n%s", out)
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.GetBackend() != config.BackendMarkdown {
		t.Errorf("Backend = %q, want markdown", saved.GetBackend())
	}

	out, err = run(t, "", "habit", "list")
	if err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	if !strings.Contains(out, "Walk") {
		t.Errorf("expected migrated habit from markdown backend:\n%s", out)
	}
}

func TestRemindCmd(t *testing.T) {
	testDB := setupTestCLI(t)

	out, err := run(t, "", "remind")
	if err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if !strings.Contains(out, "No reminder due") {
		t.Errorf("expected no reminder:\n%s", out)
	}

	// A 28-day cycle whose successor started 27 days ago puts the next start tomorrow.
	today := models.Today()
	first := models.NewCycle(today.AddDate(0, 0, -55)).WithEndDate(today.AddDate(0, 0, -27))
	second := models.NewCycle(today.AddDate(0, 0, -27))
	_ = testDB.CreateCycle(first)
	_ = testDB.CreateCycle(second)

	out, err = run(t, "", "remind")
	if err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if !strings.Contains(out, "expected tomorrow") {
		t.Errorf("expected reminder:\n%s", out)
	}

	out, err = run(t, "", "remind", "--lead", "0")
	if err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if !strings.Contains(out, "No reminder due") {
		t.Errorf("expected no reminder with zero lead:\n%s", out)
	}
}

func TestSyncRequiresCharmBackend(t *testing.T) {
	setupTestCLI(t)

	_, err := run(t, "", "sync", "status")
	if err == nil || !strings.Contains(err.Error(), "charm backend") {
		t.Errorf("Expected charm backend error, got %v", err)
	}
}

func TestUnknownBackend(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "habit", "list", "--backend", "floppy"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestNewLoggerFormatAndLevel(t *testing.T) {
	setupTestCLI(t)
	if _, err := run(t, "", "profile", "show", "--log-level", "debug", "--log-format", "json"); err != nil {
		t.Fatalf("profile show failed: %v", err)
	}
	if logger.GetLevel().String() != "debug" {
		t.Errorf("level = %s, want debug", logger.GetLevel())
	}

	if _, err := run(t, "", "profile", "show", "--log-level", "loud"); err != nil {
		t.Fatalf("profile show failed: %v", err)
	}
	if logger.GetLevel().String() != "info" {
		t.Errorf("level = %s, want info fallback", logger.GetLevel())
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
	}

	for _, tt := range tests {
		bar := progressBar(tt.percent)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%v) filled = %d, want %d", tt.percent, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
			t.Errorf("progressBar(%v) width = %d, want %d", tt.percent, got, barWidth)
		}
	}
}

func TestDayFlag(t *testing.T) {
	d, err := dayFlag("2024-05-06")
	if err != nil {
		t.Fatalf("dayFlag failed: %v", err)
	}
	if !d.Equal(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dayFlag = %v", d)
	}

	d, err = dayFlag("")
	if err != nil || !d.Equal(models.Today()) {
		t.Errorf("dayFlag(\"\") = %v, %v; want today", d, err)
	}

	if _, err := dayFlag("tomorrow"); err == nil {
		t.Error("Expected error for bad date")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long habit name", 10, "this is..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("padRight = %q", got)
	}
}
