package game

import (
	"math"
	"testing"
)

// TestGetFruitKind verifies lookup by name with first-entry default
func TestGetFruitKind(t *testing.T) {
	tests := []struct {
		name       string
		lookup     string
		wantName   string
		wantPoints int
	}{
		{"star", "star", "star", 25},
		{"golden", "golden", "golden", 50},
		{"dragonfruit", "dragonfruit", "dragonfruit", 100},
		{"unknown falls back to first entry", "banana", "star", 25},
		{"empty falls back to first entry", "", "star", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := GetFruitKind(tt.lookup)
			if k.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", k.Name, tt.wantName)
			}
			if k.PointValue != tt.wantPoints {
				t.Errorf("PointValue = %d, want %d", k.PointValue, tt.wantPoints)
			}
		})
	}
}

// TestPickSpecial verifies weighted selection walks the catalog with
// cumulative subtraction and never fails
func TestPickSpecial(t *testing.T) {
	total := totalSpawnWeight()
	if total != 10 {
		t.Fatalf("totalSpawnWeight() = %v, want 10", total)
	}

	tests := []struct {
		name string
		u    float64
		want string
	}{
		{"low roll hits common", 0.5, "star"},
		{"boundary of first weight", 6, "star"},
		{"mid roll hits middle", 7.5, "golden"},
		{"boundary of second weight", 9, "golden"},
		{"high roll hits rare", 9.5, "dragonfruit"},
		{"exact total", 10, "dragonfruit"},
		{"rounding residue caught by last entry", total + 1e-9, "dragonfruit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickSpecial(tt.u); got.Name != tt.want {
				t.Errorf("pickSpecial(%v) = %q, want %q", tt.u, got.Name, tt.want)
			}
		})
	}
}

// TestPickSpecialDistribution verifies draws over the weight range land on
// every catalog entry in weight proportion
func TestPickSpecialDistribution(t *testing.T) {
	total := totalSpawnWeight()
	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		u := (float64(i) + 0.5) / n * total
		counts[pickSpecial(u).Name]++
	}

	for _, k := range SpecialFruits {
		want := k.SpawnWeight / total * n
		got := float64(counts[k.Name])
		if math.Abs(got-want) > n*0.01 {
			t.Errorf("%s drawn %v times, want ~%v", k.Name, got, want)
		}
	}
}

// TestScoreColor verifies point values map to descending color tiers
func TestScoreColor(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{10, "#ffffff"},
		{24, "#ffffff"},
		{25, "#4dd0e1"},
		{49, "#4dd0e1"},
		{50, "#ffc107"},
		{100, "#e91e63"},
		{250, "#e91e63"},
	}

	for _, tt := range tests {
		if got := ScoreColor(tt.value); got != tt.want {
			t.Errorf("ScoreColor(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

// TestPointValue verifies regular and special bodies score by kind
func TestPointValue(t *testing.T) {
	regular := newBody(1, 0, 0, 0, 0, 60, 0, 0)
	if regular.PointValue() != RegularPointValue {
		t.Errorf("regular PointValue = %d, want %d", regular.PointValue(), RegularPointValue)
	}

	special := newBody(2, 0, 0, 0, 0, 70, 0, 0)
	special.Special = true
	special.Kind = GetFruitKind("golden")
	if special.PointValue() != 50 {
		t.Errorf("special PointValue = %d, want 50", special.PointValue())
	}
}
