package variant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownApiLevel is returned for a codename missing from the API level table.
var ErrUnknownApiLevel = errors.New("unknown api level")

// apiLevels maps platform codenames to API levels.
//
//nolint:gochecknoglobals // Read-only lookup table.
var apiLevels = map[string]int{
	"G":               9,
	"I":               14,
	"J":               16,
	"J-MR1":           17,
	"J-MR2":           18,
	"K":               19,
	"L":               21,
	"L-MR1":           22,
	"M":               23,
	"N":               24,
	"N-MR1":           25,
	"O":               26,
	"O-MR1":           27,
	"P":               28,
	"Q":               29,
	"R":               30,
	"S":               31,
	"Sv2":             32,
	"T":               33,
	"Tiramisu":        33,
	"U":               34,
	"UpsideDownCake":  34,
	"V":               35,
	"VanillaIceCream": 35,
	"Baklava":         36,
}

// ParseApiLevel accepts a numeric API level ("33") or a platform codename ("Tiramisu").
// Codename lookup is case-insensitive.
func ParseApiLevel(s string) (int, error) {
	s = strings.TrimSpace(s)

	if level, err := strconv.Atoi(s); err == nil {
		if level <= 0 {
			return 0, fmt.Errorf("api level %d: must be positive", level)
		}

		return level, nil
	}

	for codename, level := range apiLevels {
		if strings.EqualFold(codename, s) {
			return level, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownApiLevel)
}
