package simulator

import (
	"fmt"
	"time"

	"github.com/vitalsync/vitalsync-api/internal/models"
)

var seedPatients = []struct {
	name   string
	age    int
	gender string
}{
	{"Rajesh Kumar", 58, "M"},
	{"Priya Sharma", 34, "F"},
	{"Arun Patel", 72, "M"},
	{"Meena Devi", 45, "F"},
	{"Vikram Singh", 63, "M"},
	{"Lakshmi Iyer", 51, "F"},
	{"Suresh Reddy", 67, "M"},
	{"Ananya Das", 29, "F"},
}

// Patients returns the demo registry: eight patients in rooms 101 through 108,
// admitted between one and eight days ago.
func (g *Generator) Patients() []models.Patient {
	now := g.now()
	patients := make([]models.Patient, 0, len(seedPatients))
	for i, p := range seedPatients {
		admitted := now.Add(-time.Duration((g.rng.Float64()*7+1)*24) * time.Hour)
		patients = append(patients, models.Patient{
			ID:         fmt.Sprintf("P-%03d", i+1),
			Name:       p.name,
			Age:        p.age,
			Gender:     p.gender,
			Room:       fmt.Sprintf("%d", 101+i),
			AdmittedAt: admitted,
		})
	}
	return patients
}
