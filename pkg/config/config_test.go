package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fonative")
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Units() != UnitsBinary || c.Count() != DefaultPeekCount || c.Disassemble {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		t.Fatalf("expected a default config file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Configuration file for fonative.") {
		t.Fatalf("unexpected default config:\n%s", data)
	}
}

func TestLoadValues(t *testing.T) {
	dir := t.TempDir()
	data := "aliases:\n  peek: [\"x\"]\nsize-units: decimal\npeek-count: 4\ndisassemble: true\n"
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Units() != UnitsDecimal || c.Count() != 4 || !c.Disassemble {
		t.Fatalf("unexpected config: %+v", c)
	}
	if len(c.Aliases["peek"]) != 1 || c.Aliases["peek"][0] != "x" {
		t.Fatalf("expected alias x for peek; but was %v", c.Aliases)
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, data := range []string{
		"size-units: furlongs\n",
		"peek-count: 0\n",
		"disassemble-flavor: att\n",
		"aliases: [\n",
	} {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, configFile), []byte(data), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Fatalf("expected an error for %q", data)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	n := 3
	in := &Config{SizeUnits: UnitsDecimal, PeekCount: &n}
	if err := Save(dir, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Units() != UnitsDecimal || out.Count() != 3 {
		t.Fatalf("expected %+v; but was %+v", in, out)
	}
}

func TestXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err := HistoryFilePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "fonative", historyFile); p != want {
		t.Fatalf("expected %s; but was %s", want, p)
	}
	LoadConfig()
	if _, err := os.Stat(filepath.Join(dir, "fonative", configFile)); err != nil {
		t.Fatalf("expected config file under XDG_CONFIG_HOME: %v", err)
	}
}

func TestSet(t *testing.T) {
	c := &Config{}
	for _, kv := range [][2]string{
		{"size-units", "decimal"},
		{"peek-count", "8"},
		{"disassemble", "true"},
		{"disassemble-flavor", "gnu"},
	} {
		if err := c.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("set %s: %v", kv[0], err)
		}
	}
	if c.Units() != UnitsDecimal || c.Count() != 8 || !c.Disassemble || c.DisassembleFlavor != "gnu" {
		t.Fatalf("unexpected config: %+v", c)
	}
	for _, kv := range [][2]string{
		{"size-units", "furlongs"},
		{"peek-count", "-1"},
		{"peek-count", "many"},
		{"disassemble", "maybe"},
		{"disassemble-flavor", "att"},
		{"max-string-len", "64"},
	} {
		if err := c.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("expected an error setting %s to %s", kv[0], kv[1])
		}
	}
	if c.Units() != UnitsDecimal || c.Count() != 8 || c.DisassembleFlavor != "gnu" {
		t.Fatalf("a rejected value must leave the config unchanged: %+v", c)
	}
}

func TestSaveConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := LoadConfig()
	if err := c.Set("peek-count", "5"); err != nil {
		t.Fatal(err)
	}
	if err := SaveConfig(c); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := LoadConfig().Count(); got != 5 {
		t.Fatalf("expected 5; but was %d", got)
	}
}
