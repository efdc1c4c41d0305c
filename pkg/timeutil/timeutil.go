package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// ComputeJitter returns a random duration in [0, max). Non-positive max yields 0.
func ComputeJitter(max time.Duration, rng *rand.Rand) time.Duration {
	if max <= 0 || rng == nil {
		return 0
	}
	return time.Duration(rng.Int63n(int64(max)))
}

// ExponentialBackoffDelay computes the wait before the next attempt.
// attempt is 1-based: attempt 1 waits initialDuration, attempt 2 waits
// initialDuration*multiplier, and so on, capped at maxDuration. Jitter is
// added after the cap.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng *rand.Rand,
	backoffParam BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	multiplier := backoffParam.Multiplier()
	if multiplier < 1 {
		multiplier = 1
	}

	delay := float64(backoffParam.InitialDuration()) * math.Pow(multiplier, float64(attempt-1))
	if maxDuration := backoffParam.MaxDuration(); maxDuration > 0 && delay > float64(maxDuration) {
		delay = float64(maxDuration)
	}

	return time.Duration(delay) + ComputeJitter(jitter, rng)
}
