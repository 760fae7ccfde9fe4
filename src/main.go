package main

import (
	"flag"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"liftcore/src/config"
	"liftcore/src/logger"
	"liftcore/src/system"
	"liftcore/src/types"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	envPath := flag.String("env", ".env", "Path to .env override file")
	interactive := flag.Bool("interactive", false, "Drive the system from the keyboard")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := logger.GetConfigured(level)

	cfg := config.Default()
	var err error
	if *configPath != "" {
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.Fatal().Err(err).Msg("Loading config failed")
		}
	}
	if cfg, err = cfg.ApplyEnv(*envPath); err != nil {
		log.Fatal().Err(err).Msg("Applying env overrides failed")
	}

	sys := system.New(cfg)
	sys.Subscribe(displaySnapshot)
	sys.Start()
	defer sys.Shutdown()

	if *interactive {
		runInteractive(sys, cfg)
		return
	}
	runDemo(sys, cfg)
}

// displaySnapshot is the external display collaborator: it renders
// every status snapshot the core emits.
func displaySnapshot(s types.StatusSnapshot) {
	logger.Get().Info().
		Int("car", s.CarID).
		Int("floor", s.Floor).
		Stringer("direction", s.Direction).
		Stringer("state", s.State).
		Stringer("door", s.Door).
		Int("loadKg", s.LoadKg).
		Bool("overloaded", s.Overloaded).
		Bool("maintenance", s.Maintenance).
		Msg("Car status")
}

// runDemo replays a short scripted scenario: two hall calls, an
// overload pulse, an emergency pulse and a maintenance pulse.
func runDemo(sys *system.System, cfg config.Config) {
	log := logger.Get()
	log.Info().Msg("Running demo scenario")

	sys.CallElevator(3, types.DirUp)
	sys.CallElevator(10, types.DirDown)

	sys.SetLoad(0, cfg.MaxLoadKg+20)
	time.Sleep(500 * time.Millisecond)
	sys.SetLoad(0, cfg.MaxLoadKg-80)

	sys.EmergencyStop(1)
	time.Sleep(500 * time.Millisecond)
	sys.ResetEmergency(1)

	sys.EnterMaintenance(2)
	time.Sleep(500 * time.Millisecond)
	sys.ExitMaintenance(2)

	time.Sleep(3 * time.Second)
}

// runInteractive maps keys to core operations until Ctrl-C or q.
// Digits place a hall call at that floor, going up except at the top.
// All car controls act on car 0.
func runInteractive(sys *system.System, cfg config.Config) {
	log := logger.Get()
	log.Info().Msg("Interactive mode: 0-9 hall call, o hold door, l/k load/unload, e/r emergency stop/reset, m/n maintenance enter/exit, q quit")

	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			log.Error().Err(err).Msg("Reading key failed")
			return
		}
		if key == keyboard.KeyCtrlC || char == 'q' {
			return
		}
		switch {
		case char >= '0' && char <= '9':
			floor := int(char - '0')
			dir := types.DirUp
			if floor >= cfg.TopFloor() {
				dir = types.DirDown
			}
			sys.CallElevator(floor, dir)
		case char == 'o':
			sys.HoldDoor(0)
		case char == 'l':
			sys.SetLoad(0, cfg.MaxLoadKg+20)
		case char == 'k':
			sys.SetLoad(0, 0)
		case char == 'e':
			sys.EmergencyStop(0)
		case char == 'r':
			sys.ResetEmergency(0)
		case char == 'm':
			sys.EnterMaintenance(0)
		case char == 'n':
			sys.ExitMaintenance(0)
		}
	}
}
