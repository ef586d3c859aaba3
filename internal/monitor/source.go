// Package monitor owns the live-readings state: the patient registry, the
// latest classified reading per patient, and the vitals source seam that lets
// a hardware feed replace the simulator without touching anything downstream.
package monitor

import (
	"context"

	"github.com/vitalsync/vitalsync-api/internal/models"
)

// Source is the capability interface every vitals feed implements. The
// synthetic generator and the live MQTT ingestion path are interchangeable
// behind it; new implementations must honor the same VitalReading contract.
type Source interface {
	// ProduceReading returns one fresh reading on demand.
	ProduceReading(ctx context.Context) (models.VitalReading, error)

	// Subscribe registers fn for pushed readings and returns a cancel
	// handle. The consumer owns the cancellation lifecycle; calling cancel
	// stops delivery and releases the underlying ticker or subscription.
	Subscribe(fn func(models.VitalReading)) (cancel func(), err error)
}
