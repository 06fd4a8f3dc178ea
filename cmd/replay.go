package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chippy-vm/chippy/internal/chip8"
)

var replaySteps int

// replayCmd steps a ROM purely through the VM's public Observation API and
// prints each decoded instruction. It opens no window and plays no sound;
// it exists for debugging a ROM or this interpreter, not for driving a
// recorded-input replay.
var replayCmd = &cobra.Command{
	Use:   "replay path/to/rom",
	Short: "step a rom and print each decoded instruction",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&replaySteps, "steps", 200, "number of instructions to execute")
}

func runReplay(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("replay: read rom: %w", err)
	}

	vm := chip8.New()
	if err := vm.Load(rom); err != nil {
		return fmt.Errorf("replay: load rom: %w", err)
	}

	for i := 0; i < replaySteps; i++ {
		pc := vm.PC()
		if err := vm.Step(); err != nil {
			fmt.Printf("%#03x: fault: %v\n", pc, err)
			return err
		}
		if vm.Waiting() {
			fmt.Printf("%#03x: LD Vx, K (blocked on keypress)\n", pc)
			break
		}
		fmt.Printf("%#03x: %s\n", pc, vm.LastInstructionMnemonic())
	}
	return nil
}
