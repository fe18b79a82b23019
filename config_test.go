package bookarmor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/n2code/bookarmor/internal/checksum"
)

// clearConfigEnvironment guards against variables leaking in from the
// developer's shell.
func clearConfigEnvironment(t *testing.T) {
	t.Helper()
	for _, variable := range []string{envBookDir, envIndex, envCsv, envRepair, envRedundancy, envHash, envOnError} {
		t.Setenv(variable, "")
		os.Unsetenv(variable)
	}
}

func TestConfigDefaults(t *testing.T) {
	clearConfigEnvironment(t)
	bookDir := t.TempDir()
	t.Setenv(envBookDir, bookDir)

	config, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatal(err)
	}
	if config.BookDir != bookDir {
		t.Errorf("expected book directory %s, got %s", bookDir, config.BookDir)
	}
	if config.LedgerPath != filepath.Join(bookDir, "index.md5sum") {
		t.Errorf("ledger must default into the book directory, got %s", config.LedgerPath)
	}
	if config.CatalogPath != filepath.Join(bookDir, "index.csv") {
		t.Errorf("catalog must default into the book directory, got %s", config.CatalogPath)
	}
	if config.RepairDir != filepath.Join(bookDir, "repair") {
		t.Errorf("repair store must default into the book directory, got %s", config.RepairDir)
	}
	if config.Redundancy != DefaultRedundancyPercent {
		t.Errorf("expected default redundancy %d, got %d", DefaultRedundancyPercent, config.Redundancy)
	}
	if config.Algorithm != checksum.DefaultAlgorithm {
		t.Errorf("expected default algorithm %s, got %s", checksum.DefaultAlgorithm, config.Algorithm)
	}
	if config.OnError != ContinueOnError {
		t.Errorf("expected default error policy %s, got %s", ContinueOnError, config.OnError)
	}
}

func TestConfigFileIsApplied(t *testing.T) {
	clearConfigEnvironment(t)
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config")
	content := strings.Join([]string{
		"[library]",
		"dir = " + filepath.Join(dir, "Library"),
		"index = " + filepath.Join(dir, "checksums.md5sum"),
		"[protection]",
		"redundancy = 25",
		"[checksum]",
		"algorithm = sha256",
		"[run]",
		"on_error = abort",
	}, "\n")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatal(err)
	}
	if config.BookDir != filepath.Join(dir, "Library") {
		t.Errorf("book directory not taken from file, got %s", config.BookDir)
	}
	if config.LedgerPath != filepath.Join(dir, "checksums.md5sum") {
		t.Errorf("ledger path not taken from file, got %s", config.LedgerPath)
	}
	if config.CatalogPath != filepath.Join(dir, "Library", "index.csv") {
		t.Errorf("unset catalog path must still default into the book directory, got %s", config.CatalogPath)
	}
	if config.Redundancy != 25 {
		t.Errorf("redundancy not taken from file, got %d", config.Redundancy)
	}
	if config.Algorithm != checksum.SHA256 {
		t.Errorf("algorithm not taken from file, got %s", config.Algorithm)
	}
	if config.OnError != AbortOnError {
		t.Errorf("error policy not taken from file, got %s", config.OnError)
	}
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	clearConfigEnvironment(t)
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config")
	if err := os.WriteFile(configFile, []byte("[protection]\nredundancy = 25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envBookDir, dir)
	t.Setenv(envRedundancy, "42")
	t.Setenv(envHash, "blake3")

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatal(err)
	}
	if config.Redundancy != 42 {
		t.Errorf("environment must win over the file, got redundancy %d", config.Redundancy)
	}
	if config.Algorithm != checksum.BLAKE3 {
		t.Errorf("environment must win over the default, got algorithm %s", config.Algorithm)
	}
}

func TestConfigRejectsBadValues(t *testing.T) {
	clearConfigEnvironment(t)
	t.Setenv(envBookDir, t.TempDir())

	for _, badCase := range []struct {
		variable string
		value    string
	}{
		{envRedundancy, "0"},
		{envRedundancy, "101"},
		{envRedundancy, "plenty"},
		{envHash, "crc32"},
		{envOnError, "retry"},
	} {
		t.Setenv(badCase.variable, badCase.value)
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "none")); err == nil {
			t.Errorf("expected %s=%s to be rejected", badCase.variable, badCase.value)
		}
		os.Unsetenv(badCase.variable)
	}
}

func TestConfigExpandsTilde(t *testing.T) {
	clearConfigEnvironment(t)
	t.Setenv(envBookDir, "~/Desktop/Ebooks")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	if config.BookDir != filepath.Join(home, "Desktop", "Ebooks") {
		t.Errorf("tilde not expanded, got %s", config.BookDir)
	}
	if !strings.HasPrefix(config.LedgerPath, home) {
		t.Errorf("derived paths must inherit the expanded directory, got %s", config.LedgerPath)
	}
}
