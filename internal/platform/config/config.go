package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultUserID       = "local"
	DefaultTimezone     = "Asia/Singapore"
	DefaultHTTPAddr     = ":7777"
	DefaultStoreTimeout = 2 * time.Second
)

type Config struct {
	VaultPath       string
	DataDir         string
	DBPath          string
	CatalogPath     string
	ModulesPath     string
	PDFDir          string
	MaterialsPath   string
	UserID          string
	Location        *time.Location
	LogLevel        string
	ResponderPlugin string
	StoreTimeout    time.Duration
	HTTPAddr        string
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	dataDir := filepath.Join(vaultPath, ".fathom")
	return Config{
		VaultPath:     vaultPath,
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "fathom.db"),
		CatalogPath:   filepath.Join(dataDir, "catalog.yaml"),
		ModulesPath:   filepath.Join(dataDir, "modules.yaml"),
		PDFDir:        filepath.Join(vaultPath, "PDFs"),
		MaterialsPath: filepath.Join(vaultPath, "Materials.md"),
		UserID:        DefaultUserID,
		Location:      mustLocation(DefaultTimezone),
		LogLevel:      "warn",
		StoreTimeout:  DefaultStoreTimeout,
		HTTPAddr:      DefaultHTTPAddr,
	}, nil
}

// Load builds the vault defaults and then applies <vault>/.env and FATHOM_* environment overrides.
// Variables already present in the environment win over the .env file.
func Load(vaultPath string) (Config, error) {
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}
	envFile := filepath.Join(vaultPath, ".env")
	if _, statErr := os.Stat(envFile); statErr == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.UserID = getenv("FATHOM_USER", c.UserID)
	c.LogLevel = strings.ToLower(getenv("FATHOM_LOG_LEVEL", c.LogLevel))
	c.PDFDir = getenv("FATHOM_PDF_DIR", c.PDFDir)
	c.MaterialsPath = getenv("FATHOM_MATERIALS_FILE", c.MaterialsPath)
	c.ResponderPlugin = getenv("FATHOM_RESPONDER_PLUGIN", c.ResponderPlugin)
	c.HTTPAddr = getenv("FATHOM_HTTP_ADDR", c.HTTPAddr)

	if tz := os.Getenv("FATHOM_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid FATHOM_TIMEZONE %q: %w", tz, err)
		}
		c.Location = loc
	}
	if ms := getenvInt("FATHOM_STORE_TIMEOUT_MS", 0); ms > 0 {
		c.StoreTimeout = time.Duration(ms) * time.Millisecond
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// mustLocation falls back to UTC when the host has no tzdata for name.
func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
