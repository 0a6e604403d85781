package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `
log_level: error
defaults:
  posix:group: admins
files:
  - path: docs
    dir: true
  - path: docs/readme.txt
  - path: bin/tool
    attrs:
      posix:permissions: rwxr-xr-x
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attrfs.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadInspectConfig(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	cfg, err := loadInspectConfig(path)
	if err != nil {
		t.Fatalf("loadInspectConfig failed: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected log_level error, got %q", cfg.LogLevel)
	}
	if len(cfg.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(cfg.Files))
	}
	if !cfg.Files[0].Dir {
		t.Error("expected first entry to be a directory")
	}
	if cfg.Defaults["posix:group"] != "admins" {
		t.Errorf("unexpected defaults: %v", cfg.Defaults)
	}

	if _, err := loadInspectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestRunInspect(t *testing.T) {
	cfg, err := loadInspectConfig(writeTestConfig(t, testConfig))
	if err != nil {
		t.Fatalf("loadInspectConfig failed: %v", err)
	}

	// bin/ is never created, so bin/tool must fail.
	if err := runInspect(&bytes.Buffer{}, cfg); err == nil {
		t.Fatal("expected error creating bin/tool without bin directory")
	}

	cfg.Files = cfg.Files[:2]
	var out bytes.Buffer
	if err := runInspect(&out, cfg); err != nil {
		t.Fatalf("runInspect failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "docs/readme.txt:") {
		t.Errorf("expected file header in output, got:\n%s", output)
	}
	if !strings.Contains(output, "group=admins") {
		t.Errorf("expected overridden group in posix view, got:\n%s", output)
	}
	if !strings.Contains(output, "dos: readonly=false") {
		t.Errorf("expected dos view in output, got:\n%s", output)
	}
}
