package main

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_LoadConfig_Returns_Defaults_When_No_Path_Given_And_No_Home_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got, want := cfg.Prompt, "fdsh> "; got != want {
		t.Fatalf("prompt=%q, want=%q", got, want)
	}

	if got, want := cfg.Perm, "0644"; got != want {
		t.Fatalf("perm=%q, want=%q", got, want)
	}
}

func Test_LoadConfig_Accepts_HuJSON_With_Comments_And_Trailing_Commas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	content := `{
		// created-file permission bits
		"perm": "0600",
		"prompt": "fd> ",
	}`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got, want := cfg.Perm, "0600"; got != want {
		t.Fatalf("perm=%q, want=%q", got, want)
	}

	if got, want := cfg.Prompt, "fd> "; got != want {
		t.Fatalf("prompt=%q, want=%q", got, want)
	}
}

func Test_LoadConfig_Fails_When_Explicit_Path_Is_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func Test_Completer_Matches_Command_Prefixes(t *testing.T) {
	s := &Shell{}

	got := s.completer("re")

	want := map[string]bool{"read": true, "readv": true}
	if len(got) != len(want) {
		t.Fatalf("completions=%v, want read/readv", got)
	}

	for _, c := range got {
		if !want[c] {
			t.Fatalf("unexpected completion %q", c)
		}
	}
}
