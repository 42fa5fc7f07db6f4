package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXeroxUnitPrice(t *testing.T) {
	tests := []struct {
		name      string
		paperSize string
		colorMode string
		binding   string
		want      float64
	}{
		{"base A4 black none", PaperA4, ColorBlack, BindingNone, 2},
		{"letter priced as base", PaperLetter, ColorBlack, BindingNone, 2},
		{"A3 multiplier", PaperA3, ColorBlack, BindingNone, 3},
		{"color multiplier", PaperA4, ColorColor, BindingNone, 4},
		{"A3 color stacks", PaperA3, ColorColor, BindingNone, 6},
		{"staples surcharge", PaperA4, ColorBlack, BindingStaples, 7},
		{"spiral surcharge", PaperA4, ColorBlack, BindingSpiral, 17},
		{"hardcover surcharge", PaperA4, ColorBlack, BindingHardcover, 27},
		{"A4 color spiral", PaperA4, ColorColor, BindingSpiral, 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XeroxUnitPrice(tt.paperSize, tt.colorMode, tt.binding))
		})
	}
}

func TestXeroxTotalPrice(t *testing.T) {
	// 2 files, 3 copies, A4, color, spiral: unit 19, total 19*2*3 = 114.
	unit := XeroxUnitPrice(PaperA4, ColorColor, BindingSpiral)
	assert.Equal(t, 114.0, XeroxTotalPrice(unit, 2, 3))

	assert.Equal(t, 2.0, XeroxTotalPrice(XeroxUnitPrice(PaperA4, ColorBlack, BindingNone), 1, 1))
	assert.Zero(t, XeroxTotalPrice(XeroxUnitPrice(PaperA4, ColorBlack, BindingNone), 0, 5))
}

func TestXeroxTransitionTable(t *testing.T) {
	allowed := []struct{ from, to string }{
		{XeroxPending, XeroxProcessing},
		{XeroxPending, XeroxCancelled},
		{XeroxProcessing, XeroxReady},
		{XeroxProcessing, XeroxCancelled},
		{XeroxReady, XeroxCompleted},
		{XeroxReady, XeroxCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionXerox(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{XeroxPending, XeroxReady},
		{XeroxPending, XeroxCompleted},
		{XeroxProcessing, XeroxPending},
		{XeroxCompleted, XeroxCancelled},
		{XeroxCancelled, XeroxPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionXerox(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestIsXeroxStatus(t *testing.T) {
	for _, status := range []string{XeroxPending, XeroxProcessing, XeroxReady, XeroxCompleted, XeroxCancelled} {
		assert.True(t, IsXeroxStatus(status))
	}
	assert.False(t, IsXeroxStatus("preparing"))
}
