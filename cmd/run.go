package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"

	"github.com/chippy-vm/chippy/internal/audio"
	"github.com/chippy-vm/chippy/internal/chip8"
	"github.com/chippy-vm/chippy/internal/config"
	"github.com/chippy-vm/chippy/internal/display"
)

const (
	timerHz            = 60
	windowWidthPixels  = 1024
	windowHeightPixels = 512
)

var (
	flagClockHz           int
	flagBeepPath          string
	flagShiftUsesVY       bool
	flagIncrementIOnStore bool
)

// runCmd runs the chippy interpreter against a ROM file in a window.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a ROM in a window",
	Args:  cobra.ExactArgs(1),
	RunE:  runChippy,
}

func init() {
	runCmd.Flags().IntVar(&flagClockHz, "hz", config.DefaultClockHz, "instructions executed per second")
	runCmd.Flags().StringVar(&flagBeepPath, "beep_path", "assets/beep.mp3", "path to the mp3 played for the sound timer")
	runCmd.Flags().BoolVar(&flagShiftUsesVY, "quirks.shift_uses_vy", true, "8XY6/8XYE read and shift VY (COSMAC VIP convention)")
	runCmd.Flags().BoolVar(&flagIncrementIOnStore, "quirks.increment_i_on_store", true, "FX55/FX65 advance I by X+1")
}

func runChippy(cmd *cobra.Command, args []string) error {
	romPath := args[0]

	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	// --hz is not named after its config key, so Load does not pick it up.
	if cmd.Flags().Changed("hz") {
		cfg.ClockHz = flagClockHz
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("run: read rom: %w", err)
	}

	vm := chip8.New(chip8.WithQuirks(cfg.ChipQuirks()))
	if err := vm.Load(rom); err != nil {
		return fmt.Errorf("run: load rom: %w", err)
	}

	layout, err := cfg.KeyLayout()
	if err != nil {
		return err
	}

	logger.Info("loaded rom", "path", romPath, "bytes", len(rom), "clock_hz", cfg.ClockHz)

	var runErr error
	pixelgl.Run(func() {
		runErr = runLoop(vm, cfg, layout)
	})
	return runErr
}

func runLoop(vm *chip8.VM, cfg config.Config, layout map[uint8]string) error {
	win, err := display.New("chippy", windowWidthPixels, windowHeightPixels, layout)
	if err != nil {
		return err
	}

	var beepWatcher *audio.Watcher
	beeper, err := audio.Load(cfg.BeepPath)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
	} else {
		defer beeper.Close()
		beepWatcher = audio.NewWatcher(beeper)
	}

	cpuTicker := time.NewTicker(time.Second / time.Duration(cfg.ClockHz))
	defer cpuTicker.Stop()
	timerTicker := time.NewTicker(time.Second / timerHz)
	defer timerTicker.Stop()

	for !win.Closed() {
		select {
		case <-cpuTicker.C:
			if err := vm.Step(); err != nil {
				logger.Error("opcode fault", "err", err, "pc", fmt.Sprintf("%#03x", vm.PC()))
			}
			win.Draw(vm.Framebuffer())
			win.PollKeys(vm)
		case <-timerTicker.C:
			vm.TickTimers()
			if beepWatcher != nil {
				beepWatcher.Poll(vm.SoundActive())
			}
		}
	}

	logger.Info("window closed, shutting down")
	return nil
}
