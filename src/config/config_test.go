package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "liftcore.yaml", `
SystemName: east-tower
NumFloors: 24
MaxLoadKg: 1000
TravelDuration: 150ms
DispatchRetry: 150000000
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SystemName != "east-tower" {
		t.Errorf("SystemName = %q, want east-tower", cfg.SystemName)
	}
	if cfg.NumFloors != 24 {
		t.Errorf("NumFloors = %d, want 24", cfg.NumFloors)
	}
	if cfg.MaxLoadKg != 1000 {
		t.Errorf("MaxLoadKg = %d, want 1000", cfg.MaxLoadKg)
	}
	if cfg.TravelDuration != 150*time.Millisecond {
		t.Errorf("TravelDuration = %v, want 150ms", cfg.TravelDuration)
	}
	if cfg.DispatchRetry != 150*time.Millisecond {
		t.Errorf("DispatchRetry = %v, want 150ms", cfg.DispatchRetry)
	}
	// Missing fields keep their defaults.
	if cfg.NumCars != DefaultNumCars {
		t.Errorf("NumCars = %d, want default %d", cfg.NumCars, DefaultNumCars)
	}
	if cfg.DoorOpenDuration != DefaultDoorOpenDuration {
		t.Errorf("DoorOpenDuration = %v, want default", cfg.DoorOpenDuration)
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	path := writeFile(t, "bad.yaml", "TravelDuration: fast\n")
	if _, err := LoadFile(path); err == nil {
		t.Error("unparsable duration accepted")
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "NumFloors: 1\n")
	if _, err := LoadFile(path); err == nil {
		t.Error("single-floor building accepted")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestApplyEnv(t *testing.T) {
	path := writeFile(t, ".env", "LIFTCORE_NUM_CARS=5\nLIFTCORE_SYSTEM_NAME=freight\n")
	cfg, err := Default().ApplyEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NumCars != 5 {
		t.Errorf("NumCars = %d, want 5", cfg.NumCars)
	}
	if cfg.SystemName != "freight" {
		t.Errorf("SystemName = %q, want freight", cfg.SystemName)
	}
}

func TestApplyEnvMissingFileIsFine(t *testing.T) {
	cfg, err := Default().ApplyEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Error("missing env file changed the config")
	}
}

func TestTopFloor(t *testing.T) {
	cfg := Default()
	cfg.NumFloors = 16
	if got := cfg.TopFloor(); got != 15 {
		t.Errorf("TopFloor = %d, want 15", got)
	}
}
