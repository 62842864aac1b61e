// Package player implements player physics and state described in spec.md
// §3/§4.5: acceleration/friction/max-speed movement, yaw/pitch rotation with
// ramp-up and friction, axis-separated wall collision, and other-player
// repulsion.
//
// Grounded on original_source/common/src/player.rs (PlayerState::update and
// its helpers), ported formula for formula from glam's f32 Vec3 to this
// package's float64 Vec3 (see vec3.go).
package player

import (
	"math"

	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/maze"
	"github.com/mazenet/mazenet/internal/ring"
)

const (
	TickSecs = 1.0 / 60.0

	Height = 24.0
	Radius = 8.0

	MaxSpeed     = 240.0
	Acceleration = 1200.0
	Friction     = 5.0

	MaxRotationSpeed     = 4.0 * math.Pi
	RotationAcceleration = (MaxRotationSpeed / 0.4) * math.Pi
	RotationFriction     = 10.0

	MaxHealth = 9

	minSeparation   = Radius * 2.0
	minSeparationSq = minSeparation * minSeparation
)

// Input is one tick's worth of client input, per spec.md §3 PlayerInput.
type Input struct {
	SimTick   uint64
	Forward   bool
	Backward  bool
	Left      bool
	Right     bool
	YawLeft   bool
	YawRight  bool
	PitchUp   bool
	PitchDown bool
	Fire      bool
	FireNonce *uint32
	IsZoomed  bool
}

// State is the deterministic, per-tick-evolving part of a player, per
// spec.md §3 PlayerState.
type State struct {
	Position Vec3
	Velocity Vec3

	Yaw   float64
	Pitch float64

	YawVelocity   float64
	PitchVelocity float64

	IsZoomed bool
}

// NewState places a player at position with zero velocity and a slight
// downward pitch, matching the original's PlayerState::new.
func NewState(position Vec3) State {
	return State{Position: position, Pitch: 0.1}
}

// Player is one participant in a match, per spec.md §3 Player.
type Player struct {
	Index        int
	ClientID     uint64
	Name         string
	State        State
	Color        color.Name
	Disconnected bool
	CurrentTick  uint64
	Health       uint8

	// InputBuffer is this player's tick-indexed history of inbound
	// PlayerInput, fed by input intake and drained by the simulation
	// driver, per spec.md §4.6 step 1.
	InputBuffer *ring.NetworkBuffer[Input]

	// LastResolvedInput is reused for a tick when InputBuffer has no entry
	// for it (input repetition), per spec.md §4.6 step 2.
	LastResolvedInput Input

	// OverCapStrikes counts consecutive ticks this player exceeded the
	// per-tick input cap, per spec.md §4.7. Reaching MaxOverCapStrikes
	// disconnects the player.
	OverCapStrikes uint8
}

// InputBufferCapacity is the ring size backing Player.InputBuffer, per
// spec.md §4.6 step 1 (NetworkBuffer<PlayerInput, 128>).
const InputBufferCapacity = 128

// NewPlayer constructs a live player at full health, with its input buffer
// seeded at startTick (the tick the player joined the match).
func NewPlayer(index int, clientID uint64, name string, position Vec3, c color.Name, startTick uint64) *Player {
	return &Player{
		Index:       index,
		ClientID:    clientID,
		Name:        name,
		State:       NewState(position),
		Color:       c,
		Health:      MaxHealth,
		CurrentTick: startTick,
		InputBuffer: ring.NewNetworkBuffer[Input](InputBufferCapacity, startTick, startTick),
	}
}

// IsAlive reports whether the player can still act.
func (p *Player) IsAlive() bool { return p.Health > 0 && !p.Disconnected }

// OtherPosition is one other live player's index and position, used for
// repulsion resolution.
type OtherPosition struct {
	Index    int
	Position Vec3
}

// Update advances state by one tick given maze, input, this player's own
// index, and the positions of every other player, per spec.md §4.5 step 2
// (PlayerState::update).
func (s *State) Update(m *maze.Maze, input Input, ownIndex int, others []OtherPosition, repulsionStrength float64) {
	forward := s.applyRotation(input)
	s.applyTranslation(input, forward)
	s.resolveWallCollision(m)
	s.resolveOtherPlayerCollision(ownIndex, others, repulsionStrength)
	s.IsZoomed = input.IsZoomed
}

func (s *State) applyRotation(input Input) Vec3 {
	yawWish := 0.0
	if input.YawLeft {
		yawWish += 1.0
	}
	if input.YawRight {
		yawWish -= 1.0
	}

	pitchWish := 0.0
	if input.PitchUp {
		pitchWish += 1.0
	}
	if input.PitchDown {
		pitchWish -= 1.0
	}

	applyAxisRotation(&s.Yaw, &s.YawVelocity, yawWish, s.IsZoomed)
	applyAxisRotation(&s.Pitch, &s.PitchVelocity, pitchWish, s.IsZoomed)

	s.Pitch = clamp(s.Pitch, -math.Pi/2+0.1, math.Pi/2-0.1)

	return Vec3{X: -math.Sin(s.Yaw), Y: 0, Z: -math.Cos(s.Yaw)}
}

func (s *State) applyTranslation(input Input, forward Vec3) {
	right := Vec3{X: -forward.Z, Y: 0, Z: forward.X}

	moveWish := Vec3{}
	if input.Forward {
		moveWish = moveWish.Add(forward)
	}
	if input.Backward {
		moveWish = moveWish.Sub(forward)
	}
	if input.Right {
		moveWish = moveWish.Add(right)
	}
	if input.Left {
		moveWish = moveWish.Sub(right)
	}

	if moveWish.LengthSquared() > 0.001 {
		moveWish = moveWish.Normalize()
	}

	s.Velocity = s.Velocity.Add(moveWish.Scale(Acceleration * TickSecs))

	currentSpeed := s.Velocity.Length()
	if currentSpeed > 0 {
		drop := currentSpeed * Friction * TickSecs
		newSpeed := math.Max(currentSpeed-drop, 0)

		if currentSpeed > MaxSpeed {
			s.Velocity = s.Velocity.Normalize().Scale(MaxSpeed)
		} else {
			s.Velocity = s.Velocity.Scale(newSpeed / currentSpeed)
		}
	}

	if s.Velocity.LengthSquared() < 0.001 {
		s.Velocity = Vec3{}
	}
}

func (s *State) resolveWallCollision(m *maze.Maze) {
	if s.Velocity.LengthSquared() < 0.001 {
		return
	}

	moveStep := s.Velocity.Scale(TickSecs)

	testX := s.Position.Add(Vec3{X: moveStep.X})
	if m.IsWayClear(testX.X, testX.Z, maze.CellSize) {
		s.Position.X = testX.X
	} else {
		s.Velocity.X = 0
	}

	testZ := s.Position.Add(Vec3{Z: moveStep.Z})
	if m.IsWayClear(testZ.X, testZ.Z, maze.CellSize) {
		s.Position.Z = testZ.Z
	} else {
		s.Velocity.Z = 0
	}
}

func (s *State) resolveOtherPlayerCollision(ownIndex int, others []OtherPosition, repulsionStrength float64) {
	for _, other := range others {
		if other.Index == ownIndex {
			continue
		}

		diff := s.Position.Sub(other.Position)
		distSq := diff.LengthSquared()

		if distSq < minSeparationSq && distSq > 0.0001 {
			dist := math.Sqrt(distSq)
			overlap := minSeparation - dist
			normal := diff.Scale(1 / dist)

			s.Position = s.Position.Add(normal.Scale(overlap * repulsionStrength))

			velAlongNormal := s.Velocity.Dot(normal)
			if velAlongNormal < 0 {
				s.Velocity = s.Velocity.Sub(normal.Scale(velAlongNormal))
			}
		}
	}
}

func applyAxisRotation(angle, velocity *float64, wish float64, isZoomed bool) {
	isDriving := math.Abs(wish) > 0 && (math.Abs(*velocity) < 0.001 || sign(wish) == sign(*velocity))

	if isDriving {
		currentRatio := math.Abs(*velocity) / MaxRotationSpeed

		var rampMultiplier float64
		if isZoomed {
			rampMultiplier = 0.05 + (0.95 * currentRatio)
		} else {
			rampMultiplier = 0.2 + (0.8 * currentRatio)
		}

		*velocity += wish * (RotationAcceleration * rampMultiplier) * TickSecs

		if math.Abs(*velocity) > MaxRotationSpeed {
			*velocity = sign(*velocity) * MaxRotationSpeed
		}
	} else {
		speed := math.Abs(*velocity)
		if speed > 0.001 {
			drop := speed * RotationFriction * TickSecs
			newSpeed := math.Max(speed-drop, 0)
			*velocity = sign(*velocity) * newSpeed
		} else {
			*velocity = 0
		}

		if wish != 0 {
			*velocity += wish * RotationAcceleration * TickSecs
		}
	}

	*angle += *velocity * TickSecs
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
