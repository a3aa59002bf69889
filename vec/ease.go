package vec

import (
	"math"
	"math/rand/v2"
)

// Clamp limits x to [mini, maxi]. If maxi < mini, x is returned as is.
func Clamp(x, mini, maxi float64) float64 {
	if maxi < mini {
		return x
	}
	return min(max(x, mini), maxi)
}

// Lerp interpolates between a (t=0) and b (t=1).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Chrange maps x linearly from the from range to the to range, raising the
// normalised value to power and optionally flipping it first.
func Chrange(x float64, from, to [2]float64, power float64, flipped bool) float64 {
	n := (x - from[0]) / (from[1] - from[0])
	if power != 1 {
		n = math.Pow(n, power)
	}
	if flipped {
		n = 1 - n
	}
	return n*(to[1]-to[0]) + to[0]
}

// AngleTowards turns start towards goal by at most maxMovement degrees,
// going the short way round.
func AngleTowards(start, goal, maxMovement float64) float64 {
	start = mod360(start)
	goal = mod360(goal)

	if math.Abs(start-goal) > 180 {
		return start + Clamp(start-goal, -maxMovement, maxMovement)
	}
	return start + Clamp(goal-start, -maxMovement, maxMovement)
}

func mod360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Bounce eases from 0 to 1 in f, overshoots, then settles on 1.
// k controls the strength of the overshoot.
func Bounce(x, f, k float64) float64 {
	s := max(x-f, 0)
	return min(x*x/(f*f), 1+(2/f)*s*math.Exp(-k*s))
}

// ExpImpulse rises quickly to 1 at x = 1/k and decays slowly back to 0.
func ExpImpulse(x, k float64) float64 {
	h := k * x
	return h * math.Exp(1-h)
}

// RandomInRect returns a uniformly random point of r.
func RandomInRect(rng *rand.Rand, r Rect) Vec2 {
	return V(r.Pos.X+rng.Float64()*r.Size.X, r.Pos.Y+rng.Float64()*r.Size.Y)
}
