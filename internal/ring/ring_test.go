package ring

import "testing"

func TestRingReturnsDataForMatchingTick(t *testing.T) {
	r := NewRing[int](8)
	r.Insert(3, 10)

	if got, ok := r.Get(3); !ok || got != 10 {
		t.Fatalf("Get(3) = (%v, %v), want (10, true)", got, ok)
	}
	if _, ok := r.Get(3 + 8); ok {
		t.Fatalf("Get(11) should miss after only tick 3 was written")
	}
}

func TestRingReplacesSlotWithMoreRecentTick(t *testing.T) {
	r := NewRing[int](8)
	r.Insert(1, 7)
	r.Insert(9, 42)

	if _, ok := r.Get(1); ok {
		t.Fatalf("Get(1) should miss, slot now holds tick 9")
	}
	if got, ok := r.Get(9); !ok || got != 42 {
		t.Fatalf("Get(9) = (%v, %v), want (42, true)", got, ok)
	}
}

func TestNewRingPanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-two capacity")
		}
	}()
	NewRing[int](7)
}

func TestNewRingPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero capacity")
		}
	}()
	NewRing[int](0)
}

func TestForAnyPowerOfTwoInsertThenGetRoundTrips(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 128, 256} {
		r := NewRing[int](n)
		for tick := uint64(0); tick < 5; tick++ {
			r.Insert(tick, int(tick)*2)
		}
		for tick := uint64(0); tick < 5; tick++ {
			if got, ok := r.Get(tick); !ok || got != int(tick)*2 {
				t.Fatalf("capacity %d: Get(%d) = (%v, %v), want (%d, true)", n, tick, got, ok, tick*2)
			}
		}
	}
}
