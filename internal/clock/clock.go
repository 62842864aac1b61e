// Package clock implements the client-side clock synchronisation and
// target-tick scheduler described in spec.md §4.8: estimating the server's
// simulation time from periodic time beacons, and choosing which future
// tick to stamp outbound inputs with so they arrive just in time.
//
// Grounded on original_source/client/src/time.rs (update_clock,
// calculate_target_tick, update_accumulator), ported formula for formula.
package clock

const (
	sampleWindowSize   = 30
	hardSnapThreshold  = 1.0
	alphaSpeedUp       = 0.15
	alphaSlowDown      = 0.02
	deadzoneThreshold  = 0.002
	rttAlphaSpike      = 0.1
	rttAlphaImprove    = 0.01
	accumHardSnap      = 0.25
	accumNudgeClamp    = 0.002
	accumNudgeFraction = 0.1

	// TickSecs is the duration of one simulation tick, 1/60s.
	TickSecs = 1.0 / 60.0

	// JitterSafetyMargin is added on top of travel time when choosing the
	// target tick, per spec.md §4.8 (~3 ticks at 60Hz).
	JitterSafetyMargin = 0.05
)

// Sample is one observed server-time beacon (spec.md §3 ClockSample).
type Sample struct {
	ServerTime        float64
	ClientReceiveTime float64
	RTT               float64
}

// Estimator tracks the client's best estimate of the server's simulation
// clock from a rolling window of at most 30 beacon samples, plus a smoothed
// RTT used by the target-tick scheduler. Owned by exactly one client
// session; not safe for concurrent use (spec.md §5, single-threaded core).
type Estimator struct {
	samples             []Sample
	estimatedServerTime float64
	smoothedRTT         float64
}

// EstimatedServerTime returns the current estimate.
func (e *Estimator) EstimatedServerTime() float64 { return e.estimatedServerTime }

// SmoothedRTT returns the current smoothed round-trip-time estimate.
func (e *Estimator) SmoothedRTT() float64 { return e.smoothedRTT }

// AddSample records one beacon observation. Samples with a non-finite or
// non-positive RTT are skipped, per spec.md §4.8 step 1. The window holds at
// most 30 samples (spec.md §3); the oldest is dropped once full.
func (e *Estimator) AddSample(s Sample) {
	if isNaN(s.RTT) || isInf(s.RTT) || s.RTT <= 0 {
		return
	}
	e.samples = append(e.samples, s)
	if len(e.samples) > sampleWindowSize {
		e.samples = e.samples[1:]
	}
}

// Tick advances estimatedServerTime by the frame delta, then corrects it
// against the lowest-RTT sample in the window, per spec.md §4.8 steps 2-6.
// now is the client's monotonic clock, in the same units as
// Sample.ClientReceiveTime (seconds since client process start, per spec.md
// §9's "Time source" design note).
func (e *Estimator) Tick(dt, now float64) {
	e.estimatedServerTime += dt

	if len(e.samples) == 0 {
		return
	}

	best := e.samples[0]
	for _, s := range e.samples[1:] {
		if s.RTT < best.RTT {
			best = s
		}
	}

	ageOfSample := now - best.ClientReceiveTime
	latencyEstimate := best.RTT / 2.0
	target := best.ServerTime + latencyEstimate + ageOfSample
	errorVal := target - e.estimatedServerTime

	if e.estimatedServerTime == 0 || abs(errorVal) > hardSnapThreshold {
		e.estimatedServerTime = target
		return
	}

	if abs(errorVal) < deadzoneThreshold {
		return
	}

	alpha := alphaSlowDown
	if errorVal > 0 {
		alpha = alphaSpeedUp
	}
	e.estimatedServerTime += errorVal * alpha

	e.updateSmoothedRTT(best.RTT)
}

func (e *Estimator) updateSmoothedRTT(rtt float64) {
	if e.smoothedRTT == 0 {
		e.smoothedRTT = rtt
		return
	}
	alpha := rttAlphaImprove
	if rtt > e.smoothedRTT {
		alpha = rttAlphaSpike
	}
	e.smoothedRTT = e.smoothedRTT*(1-alpha) + rtt*alpha
}

// TargetTick computes the tick that an input sent right now should be
// stamped with, so it arrives at the server just in time:
// floor((estimated_server_time + smoothed_rtt/2 + JITTER_SAFETY_MARGIN) / TICK_SECS).
func (e *Estimator) TargetTick() uint64 {
	travelTime := e.smoothedRTT / 2.0
	targetSimTime := e.estimatedServerTime + travelTime + JitterSafetyMargin
	return uint64(floor(targetSimTime / TickSecs))
}

// InitialTick computes a tick from the current estimate alone, with no
// jitter margin — used once at Game-state entry before any accumulator
// nudging has happened.
func (e *Estimator) InitialTick() uint64 {
	return uint64(floor(e.estimatedServerTime / TickSecs))
}

// Accumulator tracks a simulated clock independent of the network
// estimator, nudged each frame so it tracks the target tick, with a hard
// snap if it falls too far behind (spec.md §4.8's "simulation accumulator").
type Accumulator struct {
	Value        float64 // fixed-tick accumulator consumed by the sim loop
	SimulatedTime float64
}

// Advance nudges the accumulator and simulated clock by dtSeconds plus a
// correction toward the estimator's target, clamped to +/-2ms/frame unless
// the error exceeds 250ms, in which case it snaps immediately.
func (a *Accumulator) Advance(e *Estimator, dtSeconds float64) {
	travelTime := e.smoothedRTT / 2.0
	targetSimTime := e.estimatedServerTime + travelTime + JitterSafetyMargin
	errorVal := targetSimTime - a.SimulatedTime

	var adjustment float64
	if abs(errorVal) > accumHardSnap {
		adjustment = errorVal
	} else {
		adjustment = clamp(errorVal*accumNudgeFraction, -accumNudgeClamp, accumNudgeClamp)
	}

	delta := dtSeconds + adjustment
	a.Value += delta
	a.SimulatedTime += delta
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func floor(v float64) float64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		return float64(i - 1)
	}
	return float64(i)
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

func isNaN(v float64) bool { return v != v }

func isInf(v float64) bool {
	return v > 1.7976931348623157e+308*0.999999 || v < -1.7976931348623157e+308*0.999999
}
