package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Binomial prices a contract with a Cox-Ross-Rubinstein (1979) binomial
// tree using steps time steps and backward induction with early-exercise
// checks at every node, so the same tree prices both American and Bermuda
// (which only allows exercise at its listed dates) contracts.
func Binomial(c options.Contract, steps int) primitives.Decimal {
	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, c.Style))
	}
	if steps < 1 {
		steps = 1
	}

	dt := t / float64(steps)
	up := math.Exp(sigma * math.Sqrt(dt))
	down := 1 / up
	b := r - q
	p := (math.Exp(b*dt) - down) / (up - down)
	discount := math.Exp(-r * dt)

	var bermuda options.BermudaType
	allowedExerciseSteps := map[int]bool{steps: true}
	if bt, ok := c.Type.(options.BermudaType); ok {
		bermuda = bt
		for _, date := range bermuda.ExerciseDates {
			step := int(math.Round(date.Float64() / dt))
			allowedExerciseSteps[step] = true
		}
	}
	americanStyle := isAmericanStyle(c.Type)

	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		spot := s * math.Pow(up, float64(steps-i)) * math.Pow(down, float64(i))
		values[i] = intrinsic(spot, k, c.Style)
	}

	for step := steps - 1; step >= 0; step-- {
		canExercise := americanStyle || allowedExerciseSteps[step]
		for i := 0; i <= step; i++ {
			continuation := discount * (p*values[i] + (1-p)*values[i+1])
			if canExercise {
				spot := s * math.Pow(up, float64(step-i)) * math.Pow(down, float64(i))
				continuation = math.Max(continuation, intrinsic(spot, k, c.Style))
			}
			values[i] = continuation
		}
	}

	return primitives.NewDecimalFromFloat(sign * values[0])
}

func isAmericanStyle(t options.OptionType) bool {
	_, ok := t.(options.AmericanType)
	return ok
}
