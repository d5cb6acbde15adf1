package raster

import "testing"

func TestSampleBicubic_Constant(t *testing.T) {
	m := Filled(5, 4, RGB{17, 128, 250})

	points := []struct{ u, v float64 }{
		{0, 0}, {1, 1}, {0.5, 0.5}, {0.25, 0.9}, {1, 0},
	}
	for _, p := range points {
		if got := SampleBicubic(m, p.u, p.v); got != (RGB{17, 128, 250}) {
			t.Errorf("SampleBicubic(%g,%g): got %v, want constant colour", p.u, p.v, got)
		}
	}
}

func TestSampleBicubic_Corners(t *testing.T) {
	// On a 2x2 image u=0 maps to x=-0.5: the integer part truncates to 0 and
	// the fraction is 0.5, so the top-left sample blends the bright corner
	// with its dark neighbours.
	m := New(2, 2)
	m.SetPixel(0, 0, RGB{200, 200, 200})

	if got := SampleBicubic(m, 0, 0); got != (RGB{50, 50, 50}) {
		t.Errorf("SampleBicubic(0,0): got %v, want {50 50 50}", got)
	}
	if got := SampleBicubic(m, 1, 1); got != (RGB{}) {
		t.Errorf("SampleBicubic(1,1): got %v, want black", got)
	}
}

func TestSampleBicubic_ClampsOvershoot(t *testing.T) {
	// A hard edge makes the cubic overshoot; results must stay in range
	// without wrapping around.
	m := New(8, 1)
	for x := 4; x < 8; x++ {
		m.SetPixel(x, 0, RGB{255, 255, 255})
	}
	for i := 0; i <= 20; i++ {
		u := float64(i) / 20
		c := SampleBicubic(m, u, 0.5)
		if u < 0.3 && c.R > 10 {
			t.Errorf("u=%g: dark side sampled as %v", u, c)
		}
		if u > 0.7 && c.R < 245 {
			t.Errorf("u=%g: bright side sampled as %v", u, c)
		}
	}
}

func TestSampleBicubic_OutOfRangePanics(t *testing.T) {
	m := New(2, 2)
	tests := []struct {
		name string
		u, v float64
	}{
		{"negative u", -0.01, 0.5},
		{"u above one", 1.01, 0.5},
		{"negative v", 0.5, -1},
		{"v above one", 0.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("SampleBicubic(%g,%g) should panic", tt.u, tt.v)
				}
			}()
			SampleBicubic(m, tt.u, tt.v)
		})
	}
}

func TestCubicHermite(t *testing.T) {
	if got := cubicHermite(1, 2, 3, 4, 0); got != 2 {
		t.Errorf("t=0: got %g, want 2", got)
	}
	if got := cubicHermite(1, 2, 3, 4, 0.5); got != 2.5 {
		t.Errorf("linear data at t=0.5: got %g, want 2.5", got)
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{12.9, 12},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clampChannel(tt.in); got != tt.want {
			t.Errorf("clampChannel(%g): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
