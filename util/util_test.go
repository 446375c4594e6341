package util

import (
	"testing"

	"github.com/fogleman/ease"
)

func TestSampleCurve(t *testing.T) {
	got := SampleCurve(func(p float64) float64 { return p }, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if len(SampleCurve(ease.Linear, 0)) != 2 {
		t.Error("expected at least two samples")
	}
}

func TestGenerateLutIsSymmetric(t *testing.T) {
	lut := GenerateLut(ease.InOutQuad, 10)
	for i, j := 0, len(lut)-1; i < j; i, j = i+1, j-1 {
		if lut[i] != lut[j] {
			t.Errorf("lut[%d]=%v != lut[%d]=%v", i, lut[i], j, lut[j])
		}
	}
	if lut[0] != 0 {
		t.Errorf("lut[0] = %v, want 0", lut[0])
	}
}
