package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	data := `fleet: {count: 3, capacity: 40}
customers:
  - {id: 1, demand: 5, earliest: 0, latest: 10, service_duration: 0, x: 1, y: 1}
  - {id: 2, demand: 7, earliest: 0, latest: 10, service_duration: 0, x: 2, y: 2}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write instance: %v", err)
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate", "-i", path})
	t.Cleanup(func() { instancePath = ""; rootCmd.SetArgs(nil) })

	if err := Execute(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := "tiny: 2 customers, 3 vehicles x 40, total demand 12"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestValidateCommandRejectsInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fleet: {count: 0, capacity: 40}\n"), 0o644); err != nil {
		t.Fatalf("write instance: %v", err)
	}
	rootCmd.SetArgs([]string{"validate", "--instance", path})
	t.Cleanup(func() { instancePath = ""; rootCmd.SetArgs(nil) })

	if err := Execute(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateCommandReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "from-env.yaml")
	data := "fleet: {count: 1, capacity: 10}\ncustomers:\n  - {id: 1, demand: 4, earliest: 0, latest: 10, service_duration: 0, x: 1, y: 1}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write instance: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("K_INSTANCE__PATH="+path+"\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("K_INSTANCE__PATH")
		rootCmd.SetArgs(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate"})
	if err := Execute(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "from-env: 1 customers") {
		t.Errorf("output = %q", out.String())
	}
}
