package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "cachyhist" {
		t.Errorf("expected Use to be 'cachyhist', got '%s'", RootCmd.Use)
	}
	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	commands := RootCmd.Commands()

	expected := map[string]bool{"summary": false, "export": false, "version": false}
	for _, cmd := range commands {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected command '%s' to be registered", name)
		}
	}
}

func TestRootCommandHasFlags(t *testing.T) {
	for _, name := range []string{"config", "log", "no-color"} {
		if RootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s to be registered", name)
		}
	}
	for _, name := range []string{"since", "until", "package", "exact", "operation", "limit"} {
		if RootCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected filter flag --%s to be registered", name)
		}
		if exportCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected export to share filter flag --%s", name)
		}
	}
}

// withPipelineFixture points the package-level flag state at a temp log
// and an absent config file, restoring everything afterwards.
func withPipelineFixture(t *testing.T, logContent string) {
	t.Helper()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "pacman.log")
	if err := os.WriteFile(logPath, []byte(logContent), 0644); err != nil {
		t.Fatalf("failed to write log fixture: %v", err)
	}

	oldLog, oldConfig := logFlag, configPath
	logFlag = []string{logPath}
	configPath = filepath.Join(dir, "absent-config.yaml")
	t.Cleanup(func() {
		logFlag, configPath = oldLog, oldConfig
	})
}

func TestLoadEvents_Pipeline(t *testing.T) {
	withPipelineFixture(t, `[2024-01-15T14:30:22-0500] [ALPM] installed firefox (121.0-1)
[2024-01-15T14:30:23-0500] [ALPM] upgraded linux (6.6.8-2 -> 6.6.10-1)
[2024-01-16T09:00:00-0500] [ALPM] upgraded firefox (121.0-1 -> 122.0-1)
`)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	events, skipped, err := loadEvents(&filterOptions{pkg: "firefox"}, cfg)
	if err != nil {
		t.Fatalf("loadEvents failed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 firefox events, got %d", len(events))
	}
	if events[0].Operation != "installed" || events[1].Operation != "upgraded" {
		t.Errorf("events out of order: %+v", events)
	}
}

func TestLoadEvents_BadCriteriaFailsBeforeParsing(t *testing.T) {
	// The log path does not exist; a criteria error must win because
	// validation happens before any file is opened.
	oldLog, oldConfig := logFlag, configPath
	logFlag = []string{filepath.Join(t.TempDir(), "no-such.log")}
	configPath = filepath.Join(t.TempDir(), "absent-config.yaml")
	defer func() { logFlag, configPath = oldLog, oldConfig }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	_, _, err = loadEvents(&filterOptions{since: "2024-02-01", until: "2024-01-01"}, cfg)
	if err == nil {
		t.Fatal("expected a criteria error")
	}
	if got := err.Error(); !contains(got, "before start date") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadEvents_MissingLogReportsPathAndDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such.log")
	oldLog, oldConfig := logFlag, configPath
	logFlag = []string{missing}
	configPath = filepath.Join(t.TempDir(), "absent-config.yaml")
	defer func() { logFlag, configPath = oldLog, oldConfig }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	_, _, err = loadEvents(&filterOptions{}, cfg)
	if err == nil {
		t.Fatal("expected an error for a missing log")
	}
	if !contains(err.Error(), missing) {
		t.Errorf("error %q should contain the offending path", err)
	}
	if !contains(err.Error(), "/var/log/pacman.log") {
		t.Errorf("error %q should suggest the default log location", err)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
