package dispatch

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/vitalsync/vitalsync-api/internal/models"
)

var severityColors = map[models.Severity]string{
	models.SeverityWarning:  "#d97706",
	models.SeverityCritical: "#dc2626",
}

var emailTemplate = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <div style="background-color: {{.Color}}; color: #ffffff; padding: 16px;">
    <h2 style="margin: 0;">{{.Heading}}</h2>
  </div>
  <div style="padding: 16px;">
    <p><strong>Patient:</strong> {{.PatientName}}</p>
    <p>{{.Message}}</p>
    {{- if .Vitals}}
    <table style="border-collapse: collapse;">
      {{- range .Vitals}}
      <tr>
        <td style="border: 1px solid #d1d5db; padding: 6px 12px;">{{.Label}}</td>
        <td style="border: 1px solid #d1d5db; padding: 6px 12px;">{{.Value}}</td>
      </tr>
      {{- end}}
    </table>
    {{- end}}
    <p style="color: #6b7280; font-size: 12px;">Recorded at {{.Timestamp}}</p>
  </div>
</body>
</html>`))

type vitalRow struct {
	Label string
	Value string
}

type emailData struct {
	Heading     string
	Color       string
	PatientName string
	Message     string
	Vitals      []vitalRow
	Timestamp   string
}

// renderAlertEmail builds the HTML body for one alert notification: a
// severity-colored header, the triggering vitals as a table, and a UTC
// timestamp.
func renderAlertEmail(patientName, message string, level models.Severity, vitals *VitalsPayload, at time.Time) (string, error) {
	color, ok := severityColors[level]
	if !ok {
		color = severityColors[models.SeverityWarning]
	}

	data := emailData{
		Heading:     fmt.Sprintf("%s Patient Alert", strings.ToUpper(string(level))),
		Color:       color,
		PatientName: patientName,
		Message:     message,
		Timestamp:   at.UTC().Format("2006-01-02 15:04:05 UTC"),
	}
	if vitals != nil {
		if vitals.HeartRate != nil {
			data.Vitals = append(data.Vitals, vitalRow{"Heart Rate", fmt.Sprintf("%v bpm", *vitals.HeartRate)})
		}
		if vitals.SpO2 != nil {
			data.Vitals = append(data.Vitals, vitalRow{"SpO₂", fmt.Sprintf("%v%%", *vitals.SpO2)})
		}
		if vitals.Temperature != nil {
			data.Vitals = append(data.Vitals, vitalRow{"Temperature", fmt.Sprintf("%v °C", *vitals.Temperature)})
		}
		if vitals.MotionStatus != "" {
			data.Vitals = append(data.Vitals, vitalRow{"Motion", vitals.MotionStatus})
		}
	}

	var builder strings.Builder
	if err := emailTemplate.Execute(&builder, data); err != nil {
		return "", err
	}
	return builder.String(), nil
}
