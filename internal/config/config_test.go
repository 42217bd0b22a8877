package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	conf, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf != Default() {
		t.Errorf("Load = %+v, want defaults", conf)
	}
	if _, err := os.Stat(filepath.Join(dir, configFile)); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	body := "Port = 9000\nPixelRatio = 2.0\n"
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Port != 9000 || conf.PixelRatio != 2 {
		t.Errorf("Load = %+v", conf)
	}
	if conf.CanvasWidth != 300 || !conf.Advertise {
		t.Errorf("defaults lost: %+v", conf)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Default()
	want.DataDir = "/tmp/trees"
	want.Advertise = false
	if err := Write(dir, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
	if got.TreeDir() != "/tmp/trees" {
		t.Errorf("TreeDir = %s", got.TreeDir())
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		{Port: 0, CanvasWidth: 1, CanvasHeight: 1},
		{Port: 70000, CanvasWidth: 1, CanvasHeight: 1},
		{Port: 80, CanvasWidth: 0, CanvasHeight: 1},
		{Port: 80, CanvasWidth: 1, CanvasHeight: 1, PixelRatio: -1},
		{Port: 80, CanvasWidth: MaxCanvasSize + 1, CanvasHeight: 1},
		{Port: 80, CanvasWidth: 1, CanvasHeight: 1, PixelRatio: MaxPixelRatio + 0.5},
	}
	for _, c := range bad {
		if c.Validate() == nil {
			t.Errorf("Validate(%+v) = nil, want error", c)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestAuthor(t *testing.T) {
	conf := Default()
	conf.Name = "Mina"
	if got := conf.Author(); got != "Mina" {
		t.Errorf("Author = %q", got)
	}
	conf.Name = ""
	if got := conf.Author(); got == "" {
		t.Error("Author is empty without a configured name")
	}
}
