package engine

import (
	"testing"
	"time"
)

func TestRealtimeStepTimerPacesLoop(t *testing.T) {
	rt := NewRealtimeStepTimer()

	start := time.Now()
	for i := 0; i < 5; i++ {
		rt.Spin(0.01)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("5 spins of 10ms finished in %v", elapsed)
	}
}

func TestRealtimeStepTimerSkipsWhenBehind(t *testing.T) {
	rt := NewRealtimeStepTimer()
	time.Sleep(15 * time.Millisecond)

	start := time.Now()
	rt.Spin(0.01)
	if elapsed := time.Since(start); elapsed > 8*time.Millisecond {
		t.Errorf("spin slept %v although the loop was already behind", elapsed)
	}
}

func TestRealtimeStepTimerReset(t *testing.T) {
	rt := NewRealtimeStepTimer()
	time.Sleep(15 * time.Millisecond)
	rt.Reset()

	start := time.Now()
	rt.Spin(0.01)
	if elapsed := time.Since(start); elapsed < 8*time.Millisecond {
		t.Errorf("spin after reset returned in %v, pacing not restarted", elapsed)
	}
}
