package styles

import "testing"

func TestCountStyleFor(t *testing.T) {
	if got := CountStyleFor(0).GetForeground(); got != TextMuted {
		t.Errorf("CountStyleFor(0) foreground = %v, want %v", got, TextMuted)
	}
	if got := CountStyleFor(3).GetForeground(); got != TextPrimary {
		t.Errorf("CountStyleFor(3) foreground = %v, want %v", got, TextPrimary)
	}
}
