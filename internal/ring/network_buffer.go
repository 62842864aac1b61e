package ring

// WireItem is the compact on-wire tick-stamped envelope: a 16-bit id (the
// low 16 bits of the intended 64-bit tick) alongside the payload. Used for
// both PlayerInput (client -> server) and Snapshot (server -> client).
type WireItem[T any] struct {
	ID   uint16
	Data T
}

// NetworkBuffer wraps a Ring with head/tail cursors that translate the
// wire's 16-bit ids into monotonic 64-bit ticks, tolerating wrap-around,
// reordering and duplication.
type NetworkBuffer[T any] struct {
	ring *Ring[T]
	head uint64
	tail uint64
}

// NewNetworkBuffer creates a buffer of the given capacity (must be a power
// of two) with initial head/tail cursors. Per spec, callers typically set
// both to the current tick, then establish the first real item with
// InsertFirstItem rather than Insert (see DESIGN.md Open Question 2) to
// avoid rejecting a first item that maps exactly onto tail.
func NewNetworkBuffer[T any](capacity int, head, tail uint64) *NetworkBuffer[T] {
	return &NetworkBuffer[T]{
		ring: NewRing[T](capacity),
		head: head,
		tail: tail,
	}
}

// Head returns the most recent tick observed.
func (b *NetworkBuffer[T]) Head() uint64 { return b.head }

// Tail returns the watermark below which inserts are discarded.
func (b *NetworkBuffer[T]) Tail() uint64 { return b.tail }

// Get returns the data stored for tick, if any.
func (b *NetworkBuffer[T]) Get(tick uint64) (T, bool) {
	return b.ring.Get(tick)
}

// Insert maps the wire item's 16-bit id to a 64-bit tick relative to head,
// then:
//  1. rejects (no-op) if the resolved tick is at or before tail;
//  2. writes only if the slot's current tick is strictly less than the new
//     tick (an equal-or-newer tick already present wins — this is how
//     duplicate/out-of-order packets are discarded);
//  3. advances head to the max of its current value and the new tick.
//
// If the id cannot be unambiguously resolved near head (u64 overflow), the
// item is silently dropped.
func (b *NetworkBuffer[T]) Insert(item WireItem[T]) {
	tick, ok := b.extend(item.ID)
	if !ok {
		return
	}
	if tick <= b.tail {
		return
	}
	if existing, present := b.ring.peekTick(tick); !present || existing < tick {
		b.ring.Insert(tick, item.Data)
		if tick > b.head {
			b.head = tick
		}
	}
}

// InsertFirstItem unconditionally inserts the item and establishes head,
// without consulting tail. Used for the very first item a buffer receives,
// per DESIGN.md's resolution of the NetworkBuffer (head, tail) coupling
// open question.
func (b *NetworkBuffer[T]) InsertFirstItem(item WireItem[T]) {
	tick, ok := b.extend(item.ID)
	if !ok {
		return
	}
	b.ring.Insert(tick, item.Data)
	b.head = tick
}

// AdvanceTail raises tail to the max of its current value and newTail. tail
// only ever moves forward.
func (b *NetworkBuffer[T]) AdvanceTail(newTail uint64) {
	if newTail > b.tail {
		b.tail = newTail
	}
}

// extend maps a 16-bit wire id to the 64-bit tick nearest to head,
// disambiguating wrap-around within +/-2^15 ticks (~9.1 minutes at 60Hz) by
// sign-extending the modular difference, mirroring the original Rust
// `head.checked_add_signed(difference)`. Returns false on uint64 overflow
// (wrapping below 0 or above the max tick value) in either direction.
func (b *NetworkBuffer[T]) extend(id uint16) (uint64, bool) {
	headU16 := uint16(b.head)
	modularDifference := id - headU16 // wraps, as in Rust's wrapping_sub
	difference := int64(int16(modularDifference))

	if difference >= 0 {
		delta := uint64(difference)
		tick := b.head + delta
		if tick < b.head {
			return 0, false // overflowed past the max uint64
		}
		return tick, true
	}

	delta := uint64(-difference)
	if delta > b.head {
		return 0, false // would go below zero
	}
	return b.head - delta, true
}
