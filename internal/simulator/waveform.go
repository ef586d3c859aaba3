package simulator

import "math"

// ecgCycle builds one cardiac cycle as a fixed sequence of amplitude control
// points: P wave, PR segment, QRS complex, ST segment, T wave, baseline.
func ecgCycle() []float64 {
	cycle := make([]float64, 0, 45)
	for i := 0; i < 8; i++ {
		cycle = append(cycle, math.Sin(float64(i)/8*math.Pi)*0.15)
	}
	for i := 0; i < 4; i++ {
		cycle = append(cycle, 0)
	}
	cycle = append(cycle, -0.1, -0.2, 1.0, -0.3, -0.1)
	for i := 0; i < 6; i++ {
		cycle = append(cycle, 0.02)
	}
	for i := 0; i < 10; i++ {
		cycle = append(cycle, math.Sin(float64(i)/10*math.Pi)*0.25)
	}
	for i := 0; i < 12; i++ {
		cycle = append(cycle, 0)
	}
	return cycle
}

// Waveform tiles the cardiac-cycle template to exactly n samples, adding
// independent uniform noise of at most ±0.015 per sample. Each call starts a
// fresh cycle; there is no cursor shared between calls.
func (g *Generator) Waveform(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	data := make([]float64, 0, n)
	cycle := ecgCycle()
	for len(data) < n {
		for _, v := range cycle {
			data = append(data, v+(g.rng.Float64()-0.5)*0.03)
			if len(data) >= n {
				break
			}
		}
	}
	return data
}
