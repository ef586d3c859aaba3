package simulator

import (
	"time"

	"github.com/vitalsync/vitalsync-api/internal/models"
)

// History returns one trend point per hour from `hours` ago up to now
// inclusive, oldest first. Each field is drawn from the normal uniform ranges
// independently of any live reading; this is a coarse retrospective trend for
// charting, not a replay of recorded data.
func (g *Generator) History(hours int) []models.TrendPoint {
	if hours < 0 {
		hours = 0
	}

	now := g.now()
	points := make([]models.TrendPoint, 0, hours+1)
	for i := hours; i >= 0; i-- {
		points = append(points, models.TrendPoint{
			Time:        now.Add(-time.Duration(i) * time.Hour),
			HeartRate:   g.inRange(62, 98),
			SpO2:        g.inRange(95, 100),
			Temperature: g.inRange(36.2, 37.4),
		})
	}
	return points
}
