package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ConfigDir       string   `toml:"config_dir"`
	DataDir         string   `toml:"data_dir"`
	PidDir          string   `toml:"pid_dir"`
	SweepIgnore     []string `toml:"sweep_ignore"`
	ReportRetention string   `toml:"report_retention"`
}

var dataDirOverride string

const appDirName = "pathpack"

// SetDataDirOverride routes all data-dir lookups to path for the remainder of
// the process; the CLI wires --data-dir through here.
func SetDataDirOverride(path string) {
	dataDirOverride = strings.TrimSpace(path)
}

func Default() (Config, error) {
	configHome, dataHome, err := xdgHomes()
	if err != nil {
		return Config{}, err
	}

	return Config{
		ConfigDir:       filepath.Join(configHome, appDirName),
		DataDir:         filepath.Join(dataHome, appDirName),
		PidDir:          "",
		SweepIgnore:     []string{},
		ReportRetention: "30d",
	}, nil
}

func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	path := filepath.Join(cfg.ConfigDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if cfg.SweepIgnore == nil {
		cfg.SweepIgnore = []string{}
	}

	dataDir := resolveDataDir(cfg)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DBPath locates the sweep-report database under the effective data dir.
func (c Config) DBPath() string {
	return filepath.Join(resolveDataDir(c), "sweeps.db")
}

// ResolvedPidDir is where pidfile locks are created; it falls back to the
// effective data dir when pid_dir is unset.
func (c Config) ResolvedPidDir() string {
	if strings.TrimSpace(c.PidDir) != "" {
		return c.PidDir
	}
	return resolveDataDir(c)
}

// ResolvedDataDir reports the effective data dir after overrides.
func (c Config) ResolvedDataDir() string {
	return resolveDataDir(c)
}

func (c Config) Save() error {
	if err := os.MkdirAll(c.ConfigDir, 0o755); err != nil {
		return err
	}
	return writeConfigFile(filepath.Join(c.ConfigDir, "config.toml"), c)
}

func writeConfigFile(path string, cfg Config) error {
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func xdgHomes() (string, string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	dataHome := os.Getenv("XDG_DATA_HOME")

	if configHome != "" && dataHome != "" {
		return configHome, dataHome, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", err
	}

	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return configHome, dataHome, nil
}

func resolveDataDir(cfg Config) string {
	if dataDirOverride != "" {
		return dataDirOverride
	}
	if env := strings.TrimSpace(os.Getenv("PTH_DATA_DIR")); env != "" {
		return env
	}
	if strings.TrimSpace(cfg.DataDir) != "" {
		return cfg.DataDir
	}
	return appDirName
}
