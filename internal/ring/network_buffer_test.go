package ring

import "testing"

func TestNetworkBufferInsertThenInsertOlderDoesNotOverwrite(t *testing.T) {
	b := NewNetworkBuffer[int](8, 0, 0)

	b.InsertFirstItem(WireItem[int]{ID: 9, Data: 42})
	b.Insert(WireItem[int]{ID: 1, Data: 3})

	if got, ok := b.Get(9); !ok || got != 42 {
		t.Fatalf("Get(9) = (%v, %v), want (42, true)", got, ok)
	}
	if _, ok := b.Get(1); ok {
		t.Fatalf("Get(1) should miss, tick 1 is stale relative to head 9")
	}
	if b.Head() != 9 {
		t.Fatalf("Head() = %d, want 9", b.Head())
	}
}

func TestNetworkBufferInsertAtOrBeforeTailIsNoOp(t *testing.T) {
	b := NewNetworkBuffer[int](8, 0, 0)

	b.InsertFirstItem(WireItem[int]{ID: 12, Data: 99})
	b.AdvanceTail(12)

	b.Insert(WireItem[int]{ID: 4, Data: 7})

	if _, ok := b.Get(4); ok {
		t.Fatalf("Get(4) should miss, 4 <= tail (12)")
	}
	if got, ok := b.Get(12); !ok || got != 99 {
		t.Fatalf("Get(12) = (%v, %v), want (99, true)", got, ok)
	}
	if b.Head() != 12 {
		t.Fatalf("Head() = %d, want 12 (unchanged)", b.Head())
	}
}

func TestNetworkBufferReplacesSlotWithNewerTick(t *testing.T) {
	b := NewNetworkBuffer[int](8, 0, 0)

	b.InsertFirstItem(WireItem[int]{ID: 1, Data: 1})
	b.Insert(WireItem[int]{ID: 9, Data: 2})

	if _, ok := b.Get(1); ok {
		t.Fatalf("Get(1) should miss, slot now holds tick 9")
	}
	if got, ok := b.Get(9); !ok || got != 2 {
		t.Fatalf("Get(9) = (%v, %v), want (2, true)", got, ok)
	}
	if b.Head() != 9 {
		t.Fatalf("Head() = %d, want 9", b.Head())
	}
}

func TestExtendRoundTripsWithinPlusMinus2To15(t *testing.T) {
	b := NewNetworkBuffer[int](8, 1_000_000, 0)

	cases := []uint64{
		1_000_000,
		1_000_000 + 32767,
		1_000_000 - 32768,
	}
	for _, tick := range cases {
		tick := tick
		got, ok := b.extend(uint16(tick))
		if !ok || got != tick {
			t.Errorf("extend(%d as u16) = (%d, %v), want (%d, true)", uint16(tick), got, ok, tick)
		}
	}
}

func TestExtendHandlesWraparoundInputWireExample(t *testing.T) {
	// S4 from spec.md §8: head=65_000, a late WireItem{id=64_000} resolves
	// to tick 64_000 (not 65_536+64_000), and head is unchanged because
	// 64_000 < 65_000.
	b := NewNetworkBuffer[int](8, 65_000, 0)

	b.Insert(WireItem[int]{ID: 64_000, Data: 1})

	if b.Head() != 65_000 {
		t.Fatalf("Head() = %d, want 65_000 (unchanged)", b.Head())
	}
	if got, ok := b.Get(64_000); !ok || got != 1 {
		t.Fatalf("Get(64_000) = (%v, %v), want (1, true)", got, ok)
	}
}

func TestExtendOverflowReturnsFalse(t *testing.T) {
	b := NewNetworkBuffer[uint8](8, ^uint64(0)-1, 0) // head = u64::MAX - 1

	if _, ok := b.extend(4); ok {
		t.Fatal("expected extend to report overflow near u64::MAX")
	}
}

func TestNetworkBufferNewHeadEqualsTailProperty(t *testing.T) {
	// For any N power of two, tick t, data d: after insert, get(t) hits and
	// get(t+N) misses.
	for _, n := range []int{8, 16, 128} {
		b := NewNetworkBuffer[int](n, 100, 100)
		b.InsertFirstItem(WireItem[int]{ID: uint16(100), Data: 55})
		if got, ok := b.Get(100); !ok || got != 55 {
			t.Errorf("capacity %d: Get(100) = (%v, %v), want (55, true)", n, got, ok)
		}
		if _, ok := b.Get(100 + uint64(n)); ok {
			t.Errorf("capacity %d: Get(100+N) should miss", n)
		}
	}
}
