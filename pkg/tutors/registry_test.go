package tutors

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shokunin/langotango/pkg/models"
)

func TestRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", TutorsFile)

	t.Run("NewRegistry", func(t *testing.T) {
		registry, err := NewRegistry(path)
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}
		tutors := registry.List("")
		if len(tutors) != 13 {
			t.Errorf("new registry has %d tutors, want 13", len(tutors))
		}
		if _, ok := registry.Get("mandarin"); !ok {
			t.Error("built-in tutor Mandarin not found")
		}
	})

	t.Run("AddSaveLoad", func(t *testing.T) {
		registry, _ := NewRegistry(path)
		err := registry.Add(models.Tutor{Name: "  Catalan ", Prompt: "You are a Catalan language teacher."})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if err := registry.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read tutors file: %v", err)
		}
		if strings.Contains(string(data), "Japanese") {
			t.Error("built-in tutors should not be written")
		}

		reloaded, err := NewRegistry(path)
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}
		got, ok := reloaded.Get("catalan")
		if !ok {
			t.Fatal("custom tutor not found after reload")
		}
		if got.Name != "Catalan" || got.BuiltIn {
			t.Errorf("unexpected tutor after reload: %+v", got)
		}
	})

	t.Run("AddInvalid", func(t *testing.T) {
		registry, _ := NewRegistry(path)
		err := registry.Add(models.Tutor{Name: "Bad!", Prompt: "x"})
		if !errors.Is(err, models.ErrInvalidTutorCharacter) {
			t.Errorf("Add() error = %v, want ErrInvalidTutorCharacter", err)
		}
	})

	t.Run("OverrideBuiltIn", func(t *testing.T) {
		registry, _ := NewRegistry(path)
		if err := registry.Add(models.Tutor{Name: "French", Prompt: "Be gentle."}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		got, _ := registry.Get("French")
		if got.Prompt != "Be gentle." {
			t.Errorf("custom tutor should shadow built-in, got %q", got.Prompt)
		}
		count := 0
		for _, tu := range registry.List("") {
			if tu.Name == "French" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("French listed %d times, want 1", count)
		}

		// Removing the override restores the built-in.
		if err := registry.Remove("french"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		got, _ = registry.Get("French")
		if !got.BuiltIn {
			t.Error("expected built-in French after removing the override")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		registry, _ := NewRegistry(path)
		if err := registry.Remove("Japanese"); !errors.Is(err, ErrBuiltInTutor) {
			t.Errorf("Remove(built-in) error = %v, want ErrBuiltInTutor", err)
		}
		if err := registry.Remove("Klingon"); !errors.Is(err, ErrTutorNotFound) {
			t.Errorf("Remove(missing) error = %v, want ErrTutorNotFound", err)
		}
		if err := registry.Remove("Catalan"); err != nil {
			t.Errorf("Remove(custom) error = %v", err)
		}
	})

	t.Run("ListOrder", func(t *testing.T) {
		registry, _ := NewRegistry(path)
		tutors := registry.List("Spanish")
		if tutors[0].Name != "Spanish" {
			t.Errorf("first tutor = %s, want Spanish", tutors[0].Name)
		}
		if tutors[1].Name != "Arabic" {
			t.Errorf("second tutor = %s, want Arabic", tutors[1].Name)
		}
	})
}

func TestRegistryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), TutorsFile)
	if err := os.WriteFile(path, []byte("tutors: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRegistry(path); err == nil {
		t.Error("expected error for corrupt tutors file")
	}
}

func TestBuildPrompt(t *testing.T) {
	tutor := BuiltIn()[0]
	text := strings.Repeat("a", 600) + "おわり"

	p, err := BuildPrompt(tutor, text, 0)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if got := len([]rune(p.Excerpt)); got != DefaultExcerptLength {
		t.Errorf("excerpt length = %d, want %d", got, DefaultExcerptLength)
	}
	if !strings.HasSuffix(p.Excerpt, "おわり") {
		t.Errorf("excerpt should keep the end of the text")
	}
	if p.System != tutor.Prompt {
		t.Errorf("System should be the tutor prompt")
	}
	if !strings.HasPrefix(p.User, "Here's what I'm working on:") {
		t.Errorf("unexpected user message: %q", p.User)
	}
	if !strings.Contains(p.Combined, tutor.Prompt) || !strings.Contains(p.Combined, p.Excerpt) {
		t.Errorf("combined prompt should hold the tutor prompt and the excerpt")
	}
	if !strings.Contains(tutor.Prompt, "teach them Japanese") {
		t.Errorf("unexpected built-in prompt: %q", tutor.Prompt)
	}

	if _, err := BuildPrompt(tutor, "  \n", 10); err == nil {
		t.Error("expected error for empty text")
	}
}
