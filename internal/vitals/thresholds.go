package vitals

// HeartRateThresholds bounds heart rate in beats per minute.
type HeartRateThresholds struct {
	Low          float64
	High         float64
	CriticalLow  float64
	CriticalHigh float64
}

// SpO2Thresholds bounds blood oxygen saturation in percent. Only low bounds
// exist; there is no such thing as dangerously high saturation here.
type SpO2Thresholds struct {
	Low         float64
	CriticalLow float64
}

// TemperatureThresholds bounds body temperature in degrees Celsius.
type TemperatureThresholds struct {
	Low          float64
	High         float64
	CriticalHigh float64
}

// Thresholds is the per-vital classification table. It is a plain value fixed
// at construction and passed explicitly wherever classification happens.
type Thresholds struct {
	HeartRate   HeartRateThresholds
	SpO2        SpO2Thresholds
	Temperature TemperatureThresholds
}

// DefaultThresholds returns the standard table. The bounds are illustrative,
// not clinically validated.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HeartRate: HeartRateThresholds{
			Low:          60,
			High:         100,
			CriticalLow:  50,
			CriticalHigh: 120,
		},
		SpO2: SpO2Thresholds{
			Low:         95,
			CriticalLow: 90,
		},
		Temperature: TemperatureThresholds{
			Low:          36.1,
			High:         37.5,
			CriticalHigh: 38.5,
		},
	}
}
