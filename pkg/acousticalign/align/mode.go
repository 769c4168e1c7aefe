package align

import "strings"

// AlignMode selects how Reconstruct reshapes the two signals.
type AlignMode int

const (
	// ModePadBoth pads with silence so no content is lost.
	ModePadBoth AlignMode = iota + 1
	// ModeCropBoth keeps only the span both recordings share.
	ModeCropBoth
	// ModeCropPadLeading crops the leading edge and pads the shorter tail.
	ModeCropPadLeading
	// ModeMatchReference leaves A untouched and pads or crops B to match it.
	ModeMatchReference
)

var modeNames = map[AlignMode]string{
	ModePadBoth:        "pad_both",
	ModeCropBoth:       "crop_both",
	ModeCropPadLeading: "crop_pad_leading",
	ModeMatchReference: "match_reference",
}

var modeAliases = map[string]AlignMode{
	"pad_and_crop_one_to_match_other": ModeMatchReference,
}

// Modes lists every recognized mode in declaration order.
func Modes() []AlignMode {
	return []AlignMode{ModePadBoth, ModeCropBoth, ModeCropPadLeading, ModeMatchReference}
}

func (m AlignMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether m is one of the recognized modes.
func (m AlignMode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode resolves a mode name. Matching ignores case and treats '-' as '_'.
func ParseMode(name string) (AlignMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for m, n := range modeNames {
		if n == key {
			return m, nil
		}
	}
	if m, ok := modeAliases[key]; ok {
		return m, nil
	}
	return 0, invalidInput("mode", name, "expected one of pad_both, crop_both, crop_pad_leading, match_reference")
}

// MarshalText implements encoding.TextMarshaler.
func (m AlignMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, invalidInput("mode", int(m), "unrecognized mode")
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AlignMode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
