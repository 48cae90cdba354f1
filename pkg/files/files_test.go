package files

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/workspace"
)

func testOptions(t *testing.T) (SaveOptions, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return SaveOptions{
		BackupDir: filepath.Join(t.TempDir(), "backups"),
		Logger:    zerolog.New(&buf),
		Now: func() time.Time {
			return time.Date(2024, 3, 9, 14, 5, 30, 0, time.Local)
		},
	}, &buf
}

func TestInitProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultProjectFile)
	opts, _ := testOptions(t)

	ws, err := InitProject(path, "Novel", opts)
	if err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}
	if ws.Root.Name != "Novel" {
		t.Errorf("root name = %q, want Novel", ws.Root.Name)
	}
	if ws.Current == nil || ws.Current.Name != "Hello.lango" {
		t.Fatalf("expected Hello.lango to be current, got %+v", ws.Current)
	}
	if got := ws.Current.PlainText(); got != WelcomeText {
		t.Errorf("welcome text = %q", got)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Current == nil || loaded.Current.ID != ws.Current.ID {
		t.Errorf("current document not restored")
	}

	if _, err := InitProject(path, "Again", opts); !errors.Is(err, ErrProjectExists) {
		t.Errorf("expected ErrProjectExists, got %v", err)
	}
}

func TestSaveWritesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.lango")
	opts, _ := testOptions(t)

	ws := workspace.New("Story")
	doc, _ := ws.CreateDocument(ws.Root, "Chapter 1")
	doc.Commit(content.FromPlainText("first"))
	if err := Save(path, ws, opts); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := os.Stat(opts.BackupDir); !os.IsNotExist(err) {
		t.Errorf("no backup expected for a new file")
	}
	first, _ := os.ReadFile(path)

	doc.Commit(content.FromPlainText("second"))
	if err := Save(path, ws, opts); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	backup := filepath.Join(opts.BackupDir, "story_20240309_140530.bak")
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if !bytes.Equal(data, first) {
		t.Errorf("backup should hold the previous file")
	}
	assertNoTempFiles(t, dir)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, _, err := loaded.ResolveDocument("Chapter 1")
	if err != nil {
		t.Fatalf("ResolveDocument failed: %v", err)
	}
	if got.PlainText() != "second" {
		t.Errorf("saved text = %q, want second", got.PlainText())
	}
}

func TestSaveBackupFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.lango")
	opts, logs := testOptions(t)

	// A regular file where the backup directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	opts.BackupDir = filepath.Join(blocker, "backups")

	ws := workspace.New("Story")
	if err := Save(path, ws, opts); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := Save(path, ws, opts); err != nil {
		t.Fatalf("Save should succeed when the backup fails: %v", err)
	}
	if !strings.Contains(logs.String(), "backup failed") {
		t.Errorf("expected a backup warning, got %q", logs.String())
	}
}

func TestSaveFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.lango")
	opts, _ := testOptions(t)
	opts.BackupDir = ""

	ws := workspace.New("Story")
	if err := Save(path, ws, opts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, _ := os.ReadFile(path)

	createTemp = func(string, string) (*os.File, error) {
		return nil, errors.New("disk full")
	}
	t.Cleanup(func() { createTemp = os.CreateTemp })

	ws.Root.Name = "Changed"
	if err := Save(path, ws, opts); err == nil {
		t.Fatal("expected Save to fail")
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Errorf("previous file was modified by a failed save")
	}
}

func TestConcurrentWrites(t *testing.T) {
	large := bytes.Repeat([]byte("a"), 1<<20)
	small := bytes.Repeat([]byte("b"), 1<<10)

	tests := []struct {
		name  string
		write func(path string) func([]byte) error
	}{
		{
			name: "auto-saver",
			write: func(path string) func([]byte) error {
				saver := NewAutoSaver(path, time.Minute, SaveOptions{Logger: zerolog.Nop()})
				return saver.Write
			},
		},
		{
			name: "write atomic",
			write: func(path string) func([]byte) error {
				return func(data []byte) error {
					return WriteAtomic(path, data, SaveOptions{Logger: zerolog.Nop()})
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "race.lango")
			write := tt.write(path)

			const rounds = 20
			errs := make(chan error, 2*rounds)
			var wg sync.WaitGroup
			for _, data := range [][]byte{large, small} {
				wg.Add(1)
				go func(data []byte) {
					defer wg.Done()
					for i := 0; i < rounds; i++ {
						if err := write(data); err != nil {
							errs <- err
						}
					}
				}(data)
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				t.Errorf("concurrent write failed: %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if !bytes.Equal(got, large) && !bytes.Equal(got, small) {
				t.Errorf("final file is a mix of both writes (%d bytes)", len(got))
			}
			assertNoTempFiles(t, dir)
		})
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("legacy single document", func(t *testing.T) {
		path := filepath.Join(dir, "legacy.lango")
		legacy := `{"type": "document", "name": "Old.lango", "content": "plain words", "created": "2023-01-02T03:04:05.000000", "modified": "2023-01-02T03:04:05.000000"}`
		if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
			t.Fatal(err)
		}
		ws, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if ws.Current == nil || ws.Current.PlainText() != "plain words" {
			t.Errorf("legacy document not loaded as current")
		}
	})

	t.Run("format error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.lango")
		if err := os.WriteFile(path, []byte(`{"research_folder": {}}`), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, workspace.ErrFormat) {
			t.Errorf("expected ErrFormat, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.lango"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}

func TestFindProject(t *testing.T) {
	t.Setenv(ProjectEnv, "")
	opts, _ := testOptions(t)

	dir := t.TempDir()
	if _, err := FindProject(dir); !errors.Is(err, ErrNoProject) {
		t.Errorf("expected ErrNoProject, got %v", err)
	}

	novel := filepath.Join(dir, "novel.lango")
	if _, err := InitProject(novel, "Novel", opts); err != nil {
		t.Fatal(err)
	}
	// Single documents are not projects.
	doc := workspace.NewDocument("Loose")
	data, _ := workspace.MarshalDocument(doc)
	if err := os.WriteFile(filepath.Join(dir, "loose.lango"), data, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindProject(dir)
	if err != nil || got != novel {
		t.Errorf("FindProject = %q, %v; want %q", got, err, novel)
	}

	if _, err := InitProject(filepath.Join(dir, "poems.lango"), "Poems", opts); err != nil {
		t.Fatal(err)
	}
	if _, err := FindProject(dir); !errors.Is(err, ErrAmbiguousProject) {
		t.Errorf("expected ErrAmbiguousProject, got %v", err)
	}

	preferred := filepath.Join(dir, DefaultProjectFile)
	if _, err := InitProject(preferred, "Main", opts); err != nil {
		t.Fatal(err)
	}
	if got, _ := FindProject(dir); got != preferred {
		t.Errorf("FindProject = %q, want %q", got, preferred)
	}

	t.Setenv(ProjectEnv, "/somewhere/else.lango")
	if got, _ := FindProject(dir); got != "/somewhere/else.lango" {
		t.Errorf("environment override ignored, got %q", got)
	}
}

func TestProjectPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"novel", "novel.lango"},
		{"novel.lango", "novel.lango"},
		{"dir/novel", "dir/novel.lango"},
	}
	for _, tt := range tests {
		if got := ProjectPath(tt.input); got != tt.expected {
			t.Errorf("ProjectPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBackupName(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 59, 1, 0, time.UTC)
	if got := BackupName("/a/b/My Novel.lango", ts); got != "My Novel_20251231_235901.bak" {
		t.Errorf("BackupName = %q", got)
	}
}

func TestAutoSaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.lango")
	opts, _ := testOptions(t)
	saver := NewAutoSaver(path, time.Minute, opts)
	if !saver.Enabled() {
		t.Fatal("auto-saver should be enabled")
	}
	if NewAutoSaver(path, 0, opts).Enabled() {
		t.Error("zero interval should disable auto-save")
	}

	ws := workspace.New("Auto")
	data, changed, err := saver.Snapshot(ws)
	if err != nil || !changed {
		t.Fatalf("first snapshot should be dirty: changed=%v err=%v", changed, err)
	}
	if err := saver.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, changed, _ := saver.Snapshot(ws); changed {
		t.Error("snapshot of unchanged workspace should be clean")
	}

	ws.CreateDocument(ws.Root, "New")
	if _, changed, _ := saver.Snapshot(ws); !changed {
		t.Error("snapshot after an edit should be dirty")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv(ConfigEnv, t.TempDir())

	settings, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if settings.Project.AutoSaveSeconds != 60 || settings.Tutor.Default != "Japanese" {
		t.Errorf("missing file should give defaults, got %+v", settings)
	}

	settings.Tutor.Default = "Korean"
	settings.Compile.Format = "html"
	if err := WriteSettings(settings); err != nil {
		t.Fatalf("WriteSettings failed: %v", err)
	}

	loaded, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if loaded.Tutor.Default != "Korean" || loaded.Compile.Format != "html" {
		t.Errorf("settings not persisted: %+v", loaded)
	}

	path, _ := SettingsPath()
	if err := os.WriteFile(path, []byte("ui:\n  wrap_width: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	partial, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if partial.UI.WrapWidth != 100 || partial.Project.DefaultRootName != "My Documents" {
		t.Errorf("partial file should merge with defaults: %+v", partial)
	}
}
