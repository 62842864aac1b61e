package color

import "testing"

func TestAssignerHandsOutColorsInPaletteOrder(t *testing.T) {
	var a Assigner

	first, firstColor, ok := a.Next()
	if !ok || first != Orange || firstColor != Palette[Orange] {
		t.Fatalf("first assignment = (%v, %v, %v), want (ORANGE, %v, true)", first, firstColor, ok, Palette[Orange])
	}

	second, _, ok := a.Next()
	if !ok || second != Blue {
		t.Fatalf("second assignment = %v, want BLUE", second)
	}
}

func TestAssignerExhaustsAfterTenPlayers(t *testing.T) {
	var a Assigner
	for i := 0; i < 10; i++ {
		if _, _, ok := a.Next(); !ok {
			t.Fatalf("assignment %d unexpectedly failed", i)
		}
	}
	if _, _, ok := a.Next(); ok {
		t.Fatal("11th assignment should fail, palette exhausted")
	}
}
