package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "selfcare.yaml")
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("os.WriteFile: %s", err.Error())
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(AnonKeyEnv, "")

	path := writeConfig(t, `
backend:
  url: https://project.supabase.co
  anonKey: file-key
sessionDir: /tmp/selfcare-session
output:
  dir: exports
server:
  listen: 127.0.0.1:9000
timezone: America/Sao_Paulo
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err.Error())
	}

	if conf.Backend.URL != "https://project.supabase.co" {
		t.Errorf("unexpected url %q", conf.Backend.URL)
	}
	if conf.Backend.AnonKey != "file-key" {
		t.Errorf("unexpected anon key %q", conf.Backend.AnonKey)
	}
	if conf.SessionDir != "/tmp/selfcare-session" {
		t.Errorf("unexpected session dir %q", conf.SessionDir)
	}
	if conf.Output.Dir != "exports" {
		t.Errorf("unexpected output dir %q", conf.Output.Dir)
	}
	if conf.Server.Listen != "127.0.0.1:9000" {
		t.Errorf("unexpected listen address %q", conf.Server.Listen)
	}

	loc, err := conf.Location()
	if err != nil {
		t.Fatalf("Location: %s", err.Error())
	}
	if loc.String() != "America/Sao_Paulo" {
		t.Errorf("unexpected location %s", loc)
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv(AnonKeyEnv, "")

	conf, err := Load(writeConfig(t, "backend:\n  url: http://localhost:54321\n"))
	if err != nil {
		t.Fatalf("Load: %s", err.Error())
	}

	if conf.Output.Dir != DefaultOutputDir {
		t.Errorf("expected output dir %q, got %q", DefaultOutputDir, conf.Output.Dir)
	}
	if conf.Server.Listen != DefaultListen {
		t.Errorf("expected listen %q, got %q", DefaultListen, conf.Server.Listen)
	}

	loc, err := conf.Location()
	if err != nil {
		t.Fatalf("Location: %s", err.Error())
	}
	if loc != time.Local {
		t.Errorf("expected the local zone, got %s", loc)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(AnonKeyEnv, "env-key")

	conf, err := Load(writeConfig(t, "backend:\n  anonKey: file-key\n"))
	if err != nil {
		t.Fatalf("Load: %s", err.Error())
	}
	if conf.Backend.AnonKey != "env-key" {
		t.Errorf("expected the env key, got %q", conf.Backend.AnonKey)
	}
}

func TestMissingFiles(t *testing.T) {
	t.Setenv(AnonKeyEnv, "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	conf, err := Load("")
	if err != nil {
		t.Fatalf("a missing default config should not fail: %s", err.Error())
	}
	if conf.Server.Listen != DefaultListen {
		t.Errorf("defaults were not applied")
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Errorf("an explicit missing config should fail")
	}
}

func TestInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "backend: [unclosed"))
	if err == nil {
		t.Errorf("expected a parse error")
	}

	conf := &Config{Timezone: "Not/AZone"}
	if _, err := conf.Location(); err == nil {
		t.Errorf("expected an unknown time zone to fail")
	}
}
