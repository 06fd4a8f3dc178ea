// Package keymap translates between the CHIP-8 hex keypad (0x0-0xF) and
// named physical keys, independent of any particular windowing toolkit.
package keymap

import (
	"fmt"
	"strings"
)

// DefaultLayout is the classic CHIP-8 keypad mapped onto a QWERTY
// keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var DefaultLayout = map[uint8]string{
	0x1: "1", 0x2: "2", 0x3: "3", 0xC: "4",
	0x4: "Q", 0x5: "W", 0x6: "E", 0xD: "R",
	0x7: "A", 0x8: "S", 0x9: "D", 0xE: "F",
	0xA: "Z", 0x0: "X", 0xB: "C", 0xF: "V",
}

// validKeyNames is the set of physical key names a toolkit-specific
// display package is expected to know how to resolve.
var validKeyNames = map[string]bool{
	"0": true, "1": true, "2": true, "3": true, "4": true,
	"5": true, "6": true, "7": true, "8": true, "9": true,
	"A": true, "B": true, "C": true, "D": true, "E": true, "F": true,
	"G": true, "H": true, "I": true, "J": true, "K": true, "L": true,
	"M": true, "N": true, "O": true, "P": true, "Q": true, "R": true,
	"S": true, "T": true, "U": true, "V": true, "W": true, "X": true,
	"Y": true, "Z": true,
}

// Parse validates a raw hex-digit -> key-name override map (as loaded
// from YAML config, where keys are strings) and returns the normalized
// uint8-keyed layout. Any hex digit absent from raw falls back to
// DefaultLayout.
func Parse(raw map[string]string) (map[uint8]string, error) {
	out := make(map[uint8]string, len(DefaultLayout))
	for hex, name := range DefaultLayout {
		out[hex] = name
	}
	for rawHex, name := range raw {
		hex, err := parseHexDigit(rawHex)
		if err != nil {
			return nil, err
		}
		upper := strings.ToUpper(strings.TrimSpace(name))
		if !validKeyNames[upper] {
			return nil, fmt.Errorf("keymap: unknown key name %q for hex digit %X", name, hex)
		}
		out[hex] = upper
	}
	return out, nil
}

func parseHexDigit(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, fmt.Errorf("keymap: %q is not a single hex digit", s)
	}
	switch c := s[0]; {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("keymap: %q is not a hex digit", s)
	}
}
