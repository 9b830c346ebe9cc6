package monitor

import "testing"

func TestColorForEndpoints(t *testing.T) {
	tests := []struct {
		percent int
		want    RGB
	}{
		{percent: 0, want: RGB{R: 255, G: 0, B: 0}},
		{percent: 50, want: RGB{R: 255, G: 165, B: 0}},
		{percent: 100, want: RGB{R: 0, G: 255, B: 0}},
	}

	for _, tt := range tests {
		if got := ColorFor(tt.percent); got != tt.want {
			t.Errorf("ColorFor(%d) = %+v, want %+v", tt.percent, got, tt.want)
		}
	}
}

func TestColorForGradient(t *testing.T) {
	for p := 0; p <= 100; p++ {
		c := ColorFor(p)
		if c.B != 0 {
			t.Fatalf("ColorFor(%d) has non-zero blue channel: %+v", p, c)
		}
	}

	// No discontinuity at the orange midpoint.
	if ColorFor(49).G > ColorFor(50).G+4 || ColorFor(51).R > ColorFor(50).R {
		t.Errorf("gradient jumps around 50%%: %+v %+v %+v", ColorFor(49), ColorFor(50), ColorFor(51))
	}
}

func TestColorHex(t *testing.T) {
	if got := ColorFor(100).Hex(); got != "#00ff00" {
		t.Errorf("Hex() = %q, want #00ff00", got)
	}
	if got := ColorFor(0).Hex(); got != "#ff0000" {
		t.Errorf("Hex() = %q, want #ff0000", got)
	}
}
