package bookarmor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-ini/ini"

	"github.com/n2code/bookarmor/internal/checksum"
)

// ErrorPolicy decides what a repair-set creation failure does to the rest
// of the run.
type ErrorPolicy string

const (
	ContinueOnError ErrorPolicy = "continue" //record the failure, keep armoring the remaining books, exit non-zero with a summary
	AbortOnError    ErrorPolicy = "abort"    //stop the walk at the first failed protection
)

// Config is the complete, explicit configuration of an armor run. It is
// constructed once at startup (see LoadConfig) and passed around; deep
// components never read the environment themselves.
type Config struct {
	BookDir     string             //root directory holding the collections
	LedgerPath  string             //checksum ledger file (md5sum line format)
	CatalogPath string             //tab-delimited catalog log file
	RepairDir   string             //repair store root; its base name is excluded from traversal
	Redundancy  int                //recoverable damage tolerance in percent
	Algorithm   checksum.Algorithm //content digest for new ledger entries
	OnError     ErrorPolicy
}

const DefaultRedundancyPercent = 10

// environment variable names, kept short by tradition
const (
	envRedundancy = "REDUNDANCY"
	envBookDir    = "BOOK_DIR"
	envIndex      = "INDEX"
	envCsv        = "CSV"
	envRepair     = "REPAIR"
	envHash       = "HASH"
	envOnError    = "ON_ERROR"
)

// DefaultConfigFile returns the expected location of the optional INI
// configuration file.
func DefaultConfigFile() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "bookarmor", "config")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookarmor", "config")
}

// LoadConfig builds the effective configuration: built-in defaults, then the
// INI file (if present), then environment variables on top. An empty
// configFile means the default location; a missing file at either is fine.
func LoadConfig(configFile string) (Config, error) {
	config := Config{
		Redundancy: DefaultRedundancyPercent,
		Algorithm:  checksum.DefaultAlgorithm,
		OnError:    ContinueOnError,
	}

	if configFile == "" {
		configFile = DefaultConfigFile()
	}
	if err := config.applyFile(configFile); err != nil {
		return Config{}, err
	}
	if err := config.applyEnvironment(); err != nil {
		return Config{}, err
	}
	config.BookDir = expandTilde(config.BookDir)
	config.LedgerPath = expandTilde(config.LedgerPath)
	config.CatalogPath = expandTilde(config.CatalogPath)
	config.RepairDir = expandTilde(config.RepairDir)
	config.applyPathDefaults()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) applyFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil //configuration file is optional
	}
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("loading configuration file %s: %w", path, err)
	}

	library := file.Section("library")
	if key := library.Key("dir"); key.String() != "" {
		c.BookDir = key.String()
	}
	if key := library.Key("index"); key.String() != "" {
		c.LedgerPath = key.String()
	}
	if key := library.Key("catalog"); key.String() != "" {
		c.CatalogPath = key.String()
	}
	if key := library.Key("repair"); key.String() != "" {
		c.RepairDir = key.String()
	}
	protection := file.Section("protection")
	if key := protection.Key("redundancy"); key.String() != "" {
		value, err := key.Int()
		if err != nil {
			return fmt.Errorf("configuration file %s: bad redundancy: %w", path, err)
		}
		c.Redundancy = value
	}
	if key := file.Section("checksum").Key("algorithm"); key.String() != "" {
		c.Algorithm = checksum.Algorithm(key.String())
	}
	if key := file.Section("run").Key("on_error"); key.String() != "" {
		c.OnError = ErrorPolicy(key.String())
	}
	return nil
}

func (c *Config) applyEnvironment() error {
	if value, set := os.LookupEnv(envBookDir); set {
		c.BookDir = value
	}
	if value, set := os.LookupEnv(envIndex); set {
		c.LedgerPath = value
	}
	if value, set := os.LookupEnv(envCsv); set {
		c.CatalogPath = value
	}
	if value, set := os.LookupEnv(envRepair); set {
		c.RepairDir = value
	}
	if value, set := os.LookupEnv(envRedundancy); set {
		percent, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("bad %s value %q: %w", envRedundancy, value, err)
		}
		c.Redundancy = percent
	}
	if value, set := os.LookupEnv(envHash); set {
		c.Algorithm = checksum.Algorithm(value)
	}
	if value, set := os.LookupEnv(envOnError); set {
		c.OnError = ErrorPolicy(value)
	}
	return nil
}

// applyPathDefaults fills whatever is still unset: the book directory
// defaults to ~/Desktop/Ebooks and the bookkeeping files live inside it.
func (c *Config) applyPathDefaults() {
	if c.BookDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.BookDir = filepath.Join(home, "Desktop", "Ebooks")
		}
	}
	if c.LedgerPath == "" {
		c.LedgerPath = filepath.Join(c.BookDir, "index.md5sum")
	}
	if c.CatalogPath == "" {
		c.CatalogPath = filepath.Join(c.BookDir, "index.csv")
	}
	if c.RepairDir == "" {
		c.RepairDir = filepath.Join(c.BookDir, "repair")
	}
}

func (c Config) Validate() error {
	if c.BookDir == "" {
		return fmt.Errorf("no book directory configured (set %s)", envBookDir)
	}
	if c.Redundancy < 1 || c.Redundancy > 100 {
		return fmt.Errorf("redundancy must be a percentage between 1 and 100, got %d", c.Redundancy)
	}
	if !c.Algorithm.Valid() {
		return fmt.Errorf("unsupported checksum algorithm: %s", c.Algorithm)
	}
	switch c.OnError {
	case ContinueOnError, AbortOnError:
	default:
		return fmt.Errorf("error policy must be %q or %q, got %q", ContinueOnError, AbortOnError, c.OnError)
	}
	return nil
}
