package store

import "testing"

func TestEstimateETA(t *testing.T) {
	cases := []struct {
		name         string
		preparing    int
		maxPreparing int
		want         int
	}{
		{"idle kitchen", 0, 5, 10},
		{"below capacity", 3, 5, 10},
		{"just below capacity", 4, 5, 10},
		{"at capacity", 5, 5, 15},
		{"one over", 6, 5, 20},
		{"far over", 10, 5, 40},
		{"capacity of one", 1, 1, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateETA(tc.preparing, tc.maxPreparing)
			if got != tc.want {
				t.Errorf("EstimateETA(%d, %d) = %d, want %d", tc.preparing, tc.maxPreparing, got, tc.want)
			}
		})
	}
}

func TestEstimateETAStepIsLinear(t *testing.T) {
	// Each extra preparing order beyond the limit adds exactly 5 minutes.
	prev := EstimateETA(5, 5)
	for preparing := 6; preparing < 12; preparing++ {
		got := EstimateETA(preparing, 5)
		if got-prev != 5 {
			t.Fatalf("step from preparing=%d to %d was %d, want 5", preparing-1, preparing, got-prev)
		}
		prev = got
	}
}
