package email

import (
	"bytes"
	"html/template"
)

const deviceReviewedSubject = "Your device has been reviewed"

// Templates are embedded as strings; there is only one mail flow today.
var deviceReviewedTemplate = template.Must(template.New("device_reviewed").Parse(`
<html>
<body>
  <p>Hi {{.FirstName}},</p>
  <p>Your device <b>{{.DeviceName}}</b> has been <b>{{.Status}}</b>.</p>
  {{if gt .EstimatedPrice 0.0}}<p>Estimated price: {{.EstimatedPrice}}</p>{{end}}
  <p>The eco-dispose team</p>
</body>
</html>
`))

func renderDeviceReviewed(data DeviceReviewedData) (string, error) {
	var buf bytes.Buffer
	if err := deviceReviewedTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
