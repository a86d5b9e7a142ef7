package t2048

import "math"

// Back easing constants (standard Penner values).
const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1
)

// easeOutBack overshoots past 1 before settling; f(0)=0, f(1)=1.
func easeOutBack(t float64) float64 {
	return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
}

// easeInOutBack pulls back below 0, then overshoots past 1; f(0)=0, f(1)=1.
func easeInOutBack(t float64) float64 {
	if t < 0.5 {
		return (math.Pow(2*t, 2) * ((backC2+1)*2*t - backC2)) / 2
	}
	return (math.Pow(2*t-2, 2)*((backC2+1)*(t*2-2)+backC2) + 2) / 2
}
