package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/kusumi/fileobj/pkg/disasm"
)

const (
	configDir   string = ".fonative"
	configFile  string = "config.yml"
	historyFile string = ".fonative_history"
)

// Size units understood by SizeUnits.
const (
	UnitsBinary  = "binary"
	UnitsDecimal = "decimal"
)

// DefaultPeekCount is the number of words peek reads when neither the
// command line nor the config file says otherwise.
const DefaultPeekCount = 1

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// Commands aliases.
	Aliases map[string][]string `yaml:"aliases"`

	// SizeUnits selects how device sizes are printed, "binary" (KiB, MiB)
	// or "decimal" (kB, MB).
	SizeUnits string `yaml:"size-units,omitempty"`

	// PeekCount is the default number of consecutive words read by peek.
	PeekCount *int `yaml:"peek-count,omitempty"`

	// If Disassemble is true peek decodes the words it reads as x86 instructions.
	Disassemble bool `yaml:"disassemble"`

	// DisassembleFlavor is the assembly syntax used by peek: "intel", "gnu" or "go".
	DisassembleFlavor string `yaml:"disassemble-flavor,omitempty"`
}

// Validate reports options that have no sensible meaning.
func (c *Config) Validate() error {
	switch c.SizeUnits {
	case "", UnitsBinary, UnitsDecimal:
	default:
		return fmt.Errorf("size-units must be %q or %q, not %q", UnitsBinary, UnitsDecimal, c.SizeUnits)
	}
	if c.PeekCount != nil && *c.PeekCount <= 0 {
		return fmt.Errorf("peek-count must be positive, not %d", *c.PeekCount)
	}
	if _, err := disasm.ParseFlavour(c.DisassembleFlavor); err != nil {
		return fmt.Errorf("disassemble-flavor: %v", err)
	}
	return nil
}

// Set assigns the option named key from its textual value. The resulting
// config is validated; c is left unchanged on error.
func (c *Config) Set(key, value string) error {
	n := *c
	switch key {
	case "size-units":
		n.SizeUnits = value
	case "peek-count":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("peek-count: %v", err)
		}
		n.PeekCount = &v
	case "disassemble":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("disassemble: %v", err)
		}
		n.Disassemble = v
	case "disassemble-flavor":
		n.DisassembleFlavor = value
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	if err := n.Validate(); err != nil {
		return err
	}
	*c = n
	return nil
}

// Units returns the configured size units, binary by default.
func (c *Config) Units() string {
	if c.SizeUnits == "" {
		return UnitsBinary
	}
	return c.SizeUnits
}

// Count returns the configured peek count or DefaultPeekCount.
func (c *Config) Count() int {
	if c.PeekCount == nil {
		return DefaultPeekCount
	}
	return *c.PeekCount
}

// LoadConfig attempts to populate a Config object from the config.yml file.
// A missing file is created with the default contents. Any failure is
// reported on stderr and yields an empty Config.
func LoadConfig() *Config {
	dir, err := GetConfigFilePath("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to get config file path: %v.\n", err)
		return &Config{}
	}
	c, err := Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v.\n", err)
		return &Config{}
	}
	return c
}

// Load reads config.yml from dir, creating dir and a default file first
// if they do not exist.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("could not create config directory: %v", err)
	}
	fullConfigFile := filepath.Join(dir, configFile)

	data, err := os.ReadFile(fullConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		if err := createDefaultConfig(fullConfigFile); err != nil {
			return nil, fmt.Errorf("error creating default config file: %v", err)
		}
		data, err = os.ReadFile(fullConfigFile)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read config data: %v", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unable to decode config file: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %v", fullConfigFile, err)
	}
	return &c, nil
}

// SaveConfig will marshal and save the config struct
// to disk.
func SaveConfig(conf *Config) error {
	dir, err := GetConfigFilePath("")
	if err != nil {
		return err
	}
	return Save(dir, conf)
}

// Save writes conf to config.yml in dir.
func Save(dir string, conf *Config) error {
	out, err := yaml.Marshal(*conf)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, configFile), out, 0600)
}

func createDefaultConfig(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create config file: %v", err)
	}
	defer f.Close()
	if err := writeDefaultConfig(f); err != nil {
		return fmt.Errorf("unable to write default configuration: %v", err)
	}
	return nil
}

func writeDefaultConfig(f *os.File) error {
	_, err := f.WriteString(
		`# Configuration file for fonative.

# This is the default configuration file. Available options are provided, but disabled.
# Delete the leading hash mark to enable an item.

# Provided aliases will be added to the default aliases for a given shell command.
aliases:
  # command: ["alias1", "alias2"]

# Units used to print device sizes, "binary" (KiB, MiB) or "decimal" (kB, MB).
# size-units: binary

# Number of consecutive words read by peek.
# peek-count: 1

# Uncomment the following line to make peek also decode the words it reads as x86 instructions.
# disassemble: true

# Assembly syntax used to print decoded instructions, "intel", "gnu" or "go".
# disassemble-flavor: intel
`)
	return err
}

// GetConfigFilePath gets the full path to the given config file name.
// $XDG_CONFIG_HOME/fonative is used when XDG_CONFIG_HOME is set.
func GetConfigFilePath(file string) (string, error) {
	if configPath := os.Getenv("XDG_CONFIG_HOME"); configPath != "" {
		return filepath.Join(configPath, "fonative", file), nil
	}
	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return filepath.Join(userHomeDir, configDir, file), nil
}

// HistoryFilePath returns the path of the shell history file.
func HistoryFilePath() (string, error) {
	return GetConfigFilePath(historyFile)
}
