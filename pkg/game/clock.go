package game

import "math"

const (
	// fpsSampleLimit is the sample count that triggers pruning.
	fpsSampleLimit = 120
	// fpsSamplePrune is how many of the oldest samples a prune drops.
	fpsSamplePrune = 60
)

// frameClock turns refresh timestamps into delta and elapsed times.
// All values are milliseconds.
type frameClock struct {
	started bool
	start   float64
	last    float64
	delta   float64
	elapsed float64
}

// advance records timestamp. The first call latches both the start and the
// previous timestamp, so the first delta is zero.
func (c *frameClock) advance(timestamp float64) {
	if !c.started {
		c.started = true
		c.start = timestamp
		c.last = timestamp
	}
	c.delta = timestamp - c.last
	c.last = timestamp
	c.elapsed = timestamp - c.start
}

// frameRate tracks FPS estimates and the throttle that caps simulation
// steps to the desired rate.
type frameRate struct {
	desired   float64
	estimated float64
	current   float64
	average   float64
	skipped   float64

	waitTime     float64
	waitInterval float64

	samples []float64
}

// calculate folds one refresh tick of deltaTime milliseconds into the
// throttle. After it returns, waitInterval == 0 means the tick completes a
// logical frame and the simulation should step. The return value counts the
// non-finite FPS values that were discarded.
func (f *frameRate) calculate(deltaTime float64) (discarded int) {
	if estimated := 1000 / deltaTime; finite(estimated) {
		f.estimated = estimated
	} else {
		discarded++
	}

	f.waitTime = 1000/f.desired - deltaTime
	if !finite(f.waitTime) || f.waitTime < 0 {
		f.waitTime = 0
	}

	f.waitInterval += deltaTime
	if f.waitInterval < deltaTime+f.waitTime {
		return discarded
	}

	current := 1000 / (deltaTime + f.waitTime)
	if finite(current) {
		f.current = current
		f.samples = append(f.samples, current)

		sum := 0.0
		for _, v := range f.samples {
			sum += v
		}
		f.average = math.Floor(sum/float64(len(f.samples))*100) / 100

		if len(f.samples) >= fpsSampleLimit {
			f.samples = append(f.samples[:0], f.samples[fpsSamplePrune:]...)
		}
		f.skipped = f.estimated - f.current
	} else {
		discarded++
	}
	f.waitInterval = 0
	return discarded
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
