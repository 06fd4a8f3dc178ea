// Package chip8 implements the CHIP-8 virtual machine: a cycle-accurate
// fetch/decode/execute core against an internal model of RAM, registers,
// stack, timers, keypad and a 64x32 monochrome display.
//
// The package is intentionally a closed, dependency-free library: it owns
// all of its state, performs no I/O, never logs and never panics on bad
// input. Frontends (windowing, audio, ROM loading, CLI) live outside this
// package and drive it through Step, TickTimers, PressKey/ReleaseKey, Load
// and the snapshot accessors.
package chip8

import (
	"math/rand"
	"time"
)

const (
	// MemorySize is the size of CHIP-8 addressable RAM in bytes.
	MemorySize = 4096
	// NumRegisters is the number of general purpose V registers.
	NumRegisters = 16
	// StackSize is the maximum call-stack depth.
	StackSize = 16
	// DisplayWidth is the frame buffer width in pixels.
	DisplayWidth = 64
	// DisplayHeight is the frame buffer height in pixels.
	DisplayHeight = 32
	// NumKeys is the number of keys on the hex keypad.
	NumKeys = 16
	// ProgramStart is the memory address ROMs are loaded at.
	ProgramStart = 0x200
	// MaxROMSize is the largest ROM that fits between ProgramStart and the
	// top of memory.
	MaxROMSize = MemorySize - ProgramStart

	addressMask = 0x0FFF
)

// Quirks selects between documented ambiguities in the CHIP-8 instruction
// set (see spec §9). The zero value selects the modern convention for both
// toggles; DefaultQuirks returns the COSMAC VIP conventions.
type Quirks struct {
	// ShiftUsesVY makes 8XY6/8XYE read and shift V[Y] (writing the result
	// to both V[Y] and V[X]), the original COSMAC VIP convention. When
	// false, 8XY6/8XYE shift V[X] in place and ignore Y, the convention
	// most modern interpreters use.
	ShiftUsesVY bool

	// IncrementIOnStore makes FX55/FX65 advance I to I+X+1 after the
	// register block transfer, matching the original hardware. When
	// false, I is left unchanged.
	IncrementIOnStore bool
}

// DefaultQuirks returns the COSMAC VIP conventions the test ROMs this
// interpreter targets were built against: VY-first shifts and an
// I-register that advances on block load/store.
func DefaultQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:       true,
		IncrementIOnStore: true,
	}
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithQuirks overrides the default quirk selection.
func WithQuirks(q Quirks) Option {
	return func(vm *VM) { vm.quirks = q }
}

// WithRand injects a seedable random source so CXNN is deterministic in
// tests. The production path (New with no WithRand option) seeds from the
// wall clock.
func WithRand(r *rand.Rand) Option {
	return func(vm *VM) { vm.rng = r }
}

// VM is a CHIP-8 virtual machine. It is single-threaded and non-reentrant:
// exactly one caller is expected to invoke its methods in sequence. The
// zero value is not usable; construct one with New.
type VM struct {
	memory [MemorySize]byte
	v      [NumRegisters]byte
	i      uint16
	pc     uint16
	stack  [StackSize]uint16
	sp     int

	delay byte
	sound byte

	gfx [DisplayWidth * DisplayHeight]byte

	keys            [NumKeys]bool
	waitingForKey   bool
	waitKeyReg      uint8
	waitKeyBaseline [NumKeys]bool

	lastMnemonic string

	quirks Quirks
	rng    *rand.Rand
}

// New constructs a VM with the font table preloaded and PC at
// ProgramStart. No ROM is loaded; call Load before Step.
func New(opts ...Option) *VM {
	vm := &VM{
		pc:     ProgramStart,
		quirks: DefaultQuirks(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	copy(vm.memory[:len(fontSet)], fontSet[:])
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Load copies rom into memory starting at ProgramStart. It returns
// RomTooLargeError without mutating state if rom does not fit before
// 0xFFF. Load clears the program region before copying so that a shorter
// ROM does not leave stale bytes from a previously loaded one.
func (vm *VM) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return &RomTooLargeError{Size: len(rom)}
	}
	for i := ProgramStart; i < MemorySize; i++ {
		vm.memory[i] = 0
	}
	copy(vm.memory[ProgramStart:], rom)
	return nil
}

// Reset zeroes registers, stack, frame buffer, timers and keypad state and
// rewinds PC to ProgramStart. The font table and any loaded program are
// retained.
func (vm *VM) Reset() {
	vm.v = [NumRegisters]byte{}
	vm.i = 0
	vm.pc = ProgramStart
	vm.stack = [StackSize]uint16{}
	vm.sp = 0
	vm.delay = 0
	vm.sound = 0
	vm.gfx = [DisplayWidth * DisplayHeight]byte{}
	vm.keys = [NumKeys]bool{}
	vm.waitingForKey = false
	vm.waitKeyReg = 0
	vm.waitKeyBaseline = [NumKeys]bool{}
	vm.lastMnemonic = ""
}

// Step fetches, decodes and executes exactly one instruction. If the VM is
// blocked in FX0A, Step instead checks for a qualifying key transition and
// returns without fetching a new instruction. On error, PC has already
// advanced by 2 but no other state has changed.
func (vm *VM) Step() error {
	if vm.waitingForKey {
		for k := 0; k < NumKeys; k++ {
			if !vm.waitKeyBaseline[k] && vm.keys[k] {
				vm.v[vm.waitKeyReg] = byte(k)
				vm.waitingForKey = false
				return nil
			}
		}
		return nil
	}

	opcode := uint16(vm.memory[vm.pc&addressMask])<<8 | uint16(vm.memory[(vm.pc+1)&addressMask])
	vm.pc = (vm.pc + 2) & addressMask
	return vm.execute(opcode)
}

// TickTimers decrements DT and ST by one, saturating at zero. The frontend
// is expected to call this at approximately 60Hz, independently of the
// rate Step is called at.
func (vm *VM) TickTimers() {
	if vm.delay > 0 {
		vm.delay--
	}
	if vm.sound > 0 {
		vm.sound--
	}
}

// PressKey marks key (0x0-0xF) as held down. Indices outside [0,NumKeys)
// are ignored.
func (vm *VM) PressKey(key uint8) {
	if int(key) < NumKeys {
		vm.keys[key] = true
	}
}

// ReleaseKey marks key (0x0-0xF) as released. It also drops the key from
// the FX0A entry baseline, so pressing it again satisfies a pending wait.
// Indices outside [0,NumKeys) are ignored.
func (vm *VM) ReleaseKey(key uint8) {
	if int(key) < NumKeys {
		vm.keys[key] = false
		vm.waitKeyBaseline[key] = false
	}
}

// IsKeyPressed reports whether key is currently held down.
func (vm *VM) IsKeyPressed(key uint8) bool {
	return int(key) < NumKeys && vm.keys[key]
}

// AnyKeyPressed reports whether any key is currently held down.
func (vm *VM) AnyKeyPressed() bool {
	for _, down := range vm.keys {
		if down {
			return true
		}
	}
	return false
}

// SoundActive reports whether the sound timer is currently nonzero; the
// frontend should produce a tone while this is true.
func (vm *VM) SoundActive() bool {
	return vm.sound > 0
}

// Waiting reports whether the VM is blocked on FX0A awaiting a keypress.
func (vm *VM) Waiting() bool {
	return vm.waitingForKey
}

// Registers returns a copy of V0-VF.
func (vm *VM) Registers() [NumRegisters]byte {
	return vm.v
}

// IRegister returns the current value of the I register.
func (vm *VM) IRegister() uint16 {
	return vm.i
}

// PC returns the current program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// Delay returns the current delay timer value.
func (vm *VM) Delay() byte {
	return vm.delay
}

// Sound returns the current sound timer value.
func (vm *VM) Sound() byte {
	return vm.sound
}

// StackSnapshot returns a copy of the live call stack, oldest entry first.
func (vm *VM) StackSnapshot() []uint16 {
	out := make([]uint16, vm.sp)
	copy(out, vm.stack[:vm.sp])
	return out
}

// Framebuffer returns a copy of the 64x32 pixel grid, row-major, one byte
// per pixel valued 0 or 1.
func (vm *VM) Framebuffer() [DisplayWidth * DisplayHeight]byte {
	return vm.gfx
}

// MemoryDump returns a copy of the full 4KiB address space.
func (vm *VM) MemoryDump() [MemorySize]byte {
	return vm.memory
}

// LastInstructionMnemonic returns a human readable mnemonic for the most
// recently executed instruction, or the empty string before the first
// Step.
func (vm *VM) LastInstructionMnemonic() string {
	return vm.lastMnemonic
}
