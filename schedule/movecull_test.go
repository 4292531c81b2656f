package schedule

import "testing"

func TestShouldCullWhileMoving(t *testing.T) {
	cases := []struct {
		name       string
		enabled    bool
		speed      float64
		multiplier float64
		distance   float64
		want       bool
	}{
		{"disabled never culls", false, 1000, 60, 1, false},
		{"stationary never culls", true, 0, 60, 1, false},
		{"fast camera culls near tile", true, 100, 60, 50, true},
		{"slow camera keeps distant tile", true, 1, 60, 1000, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ShouldCullWhileMoving(c.enabled, c.speed, c.multiplier, c.distance)
			if got != c.want {
				t.Errorf("ShouldCullWhileMoving(%v,%v,%v,%v) = %v, want %v",
					c.enabled, c.speed, c.multiplier, c.distance, got, c.want)
			}
		})
	}
}
