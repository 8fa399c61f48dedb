package counter

import "testing"

func TestRecordStandard(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{99, 100},
		{-1, 1}, // corrupt slot value treated as 0
		{-42, 1},
	}

	for _, tt := range tests {
		if got := RecordStandard(tt.current); got != tt.want {
			t.Errorf("RecordStandard(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestRecordSevere(t *testing.T) {
	tests := []struct {
		current int
		weight  int
		want    int
	}{
		{0, DefaultSevereWeight, 2},
		{1, DefaultSevereWeight, 3},
		{2, DefaultSevereWeight, 4},
		{0, 0, 2},  // zero weight falls back to default
		{0, -3, 2}, // negative weight falls back to default
		{5, 3, 8},  // configured weight
		{-7, DefaultSevereWeight, 2},
	}

	for _, tt := range tests {
		if got := RecordSevere(tt.current, tt.weight); got != tt.want {
			t.Errorf("RecordSevere(%d, %d) = %d, want %d", tt.current, tt.weight, got, tt.want)
		}
	}
}

func TestResetAlwaysZero(t *testing.T) {
	for _, c := range []int{0, 1, 2, 3, 100, -5} {
		if got := Reset(c); got != 0 {
			t.Errorf("Reset(%d) = %d, want 0", c, got)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	for _, c := range []int{0, 1, 7} {
		if Reset(Reset(c)) != Reset(c) {
			t.Errorf("Reset(Reset(%d)) != Reset(%d)", c, c)
		}
	}
}

func TestCountMonotonicWithoutReset(t *testing.T) {
	count := 0
	prev := 0
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			count = RecordSevere(count, DefaultSevereWeight)
		} else {
			count = RecordStandard(count)
		}
		if count < prev {
			t.Fatalf("count decreased from %d to %d at step %d", prev, count, i)
		}
		prev = count
	}
}
