package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected AlignMode
	}{
		{"pad_both", ModePadBoth},
		{"crop_both", ModeCropBoth},
		{"crop_pad_leading", ModeCropPadLeading},
		{"match_reference", ModeMatchReference},
		{"pad_and_crop_one_to_match_other", ModeMatchReference},
		{"Crop-Both", ModeCropBoth},
		{" pad_both ", ModePadBoth},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
			assert.True(t, m.Valid())
		})
	}

	_, err := ParseMode("stretch")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestModeText(t *testing.T) {
	for _, m := range Modes() {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back AlignMode
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	assert.Equal(t, "unknown", AlignMode(42).String())
	assert.False(t, AlignMode(0).Valid())
	_, err := AlignMode(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidInput)
}
