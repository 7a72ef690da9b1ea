package engine

import "time"

// RealtimeStepTimer paces a simulation loop against the wall clock so that
// each simulated dt consumes at least dt of real time.
type RealtimeStepTimer struct {
	last time.Time
}

func NewRealtimeStepTimer() *RealtimeStepTimer {
	return &RealtimeStepTimer{last: time.Now()}
}

// Spin sleeps for whatever remains of dt since the previous call and resets
// the reference point. If the loop is already slower than real time it
// returns immediately.
func (r *RealtimeStepTimer) Spin(dt float64) {
	target := r.last.Add(time.Duration(dt * float64(time.Second)))
	if now := time.Now(); now.Before(target) {
		time.Sleep(target.Sub(now))
	}
	r.last = time.Now()
}

// Reset restarts pacing from now, e.g. after a pause.
func (r *RealtimeStepTimer) Reset() {
	r.last = time.Now()
}
