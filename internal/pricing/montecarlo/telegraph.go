package montecarlo

import (
	"context"
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when a return series has too few
// observations, or contains only a single regime, to estimate transition
// rates from.
var ErrInsufficientData = errors.New("insufficient data to estimate telegraph parameters")

// TelegraphParams bundles the two-state regime-switching process's
// transition rates: LambdaUp governs the -1→+1 transition, LambdaDown the
// +1→-1 transition.
type TelegraphParams struct {
	Spot       float64
	Rate       float64
	Volatility float64
	Years      float64
	LambdaUp   float64
	LambdaDown float64
	Steps      int
}

// telegraphState is the two-state Markov regime process itself: at every
// step it either flips sign (with a rate-dependent probability) or holds.
type telegraphState struct {
	current int
	rng     *rand.Rand
}

func newTelegraphState(rng *rand.Rand) *telegraphState {
	state := 1
	if rng.Float64() < 0.5 {
		state = -1
	}
	return &telegraphState{current: state, rng: rng}
}

func (t *telegraphState) next(dt, lambdaUp, lambdaDown float64) int {
	lambda := lambdaUp
	if t.current == 1 {
		lambda = lambdaDown
	}
	lambdaDt := lambda * dt
	probability := 1.0
	if lambdaDt < 11.7 {
		probability = 1 - math.Exp(-lambdaDt)
	}
	if t.rng.Float64() < probability {
		t.current = -t.current
	}
	return t.current
}

// SimulateTelegraphTerminal draws `paths` terminal prices under the
// telegraph process: the diffusion coefficient's sign flips according to a
// two-state regime with the given transition rates, rather than staying
// fixed as in plain GBM.
func SimulateTelegraphTerminal(ctx context.Context, p TelegraphParams, paths int) ([]float64, error) {
	if paths < 1 {
		paths = 1
	}
	steps := p.Steps
	if steps < 1 {
		steps = 50
	}
	dt := p.Years / float64(steps)
	sqrtDt := math.Sqrt(dt)
	drift := p.Rate - 0.5*p.Volatility*p.Volatility

	results := make([]float64, paths)
	for i := 0; i < paths; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(fixedSeed() + uint64(i) + 1))
		state := newTelegraphState(rng)
		price := p.Spot
		for step := 0; step < steps; step++ {
			sign := float64(state.next(dt, p.LambdaUp, p.LambdaDown))
			volatility := p.Volatility * sign
			update := math.Exp(drift*dt + volatility*sqrtDt*rng.NormFloat64())
			price *= update
		}
		results[i] = price
	}
	return results, nil
}

// EstimateTelegraphParameters classifies each return against threshold into
// a +1/-1 state, measures the run-length of each state, and inverts the
// mean-duration formula E[duration] = 1/lambda to recover LambdaUp/LambdaDown.
// This is a moment-style estimator, not a maximum-likelihood calibration —
// callers needing calibrated rates from real return data should treat the
// result as a starting point.
func EstimateTelegraphParameters(returns []float64, threshold float64) (lambdaUp, lambdaDown float64, err error) {
	if len(returns) < 2 {
		return 0, 0, ErrInsufficientData
	}

	state := func(r float64) int {
		if r > threshold {
			return 1
		}
		return -1
	}

	currentState := state(returns[0])
	currentDuration := 1.0
	var upDurations, downDurations []float64

	for _, ret := range returns[1:] {
		newState := state(ret)
		if newState == currentState {
			currentDuration++
			continue
		}
		if currentState == 1 {
			upDurations = append(upDurations, currentDuration)
		} else {
			downDurations = append(downDurations, currentDuration)
		}
		currentState = newState
		currentDuration = 1
	}
	if currentState == 1 {
		upDurations = append(upDurations, currentDuration)
	} else {
		downDurations = append(downDurations, currentDuration)
	}

	sumUp := sum(upDurations)
	sumDown := sum(downDurations)
	if sumUp == 0 || sumDown == 0 {
		return 0, 0, ErrInsufficientData
	}

	lambdaUp = float64(len(downDurations)) / sumDown
	lambdaDown = float64(len(upDurations)) / sumUp
	return lambdaUp, lambdaDown, nil
}

// GenerateReturns draws a synthetic zero-drift return series of length n at
// step size dt and volatility sigma, used to seed EstimateTelegraphParameters
// when a caller supplies no historical returns of their own.
func GenerateReturns(sigma float64, n int, dt float64) []float64 {
	normal := distuv.Normal{Mu: 0, Sigma: sigma * math.Sqrt(dt), Src: rand.NewSource(fixedSeed())}
	returns := make([]float64, n)
	for i := range returns {
		returns[i] = normal.Rand()
	}
	return returns
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
