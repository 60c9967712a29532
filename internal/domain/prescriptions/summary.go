package prescriptions

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatIssuedAt imita el formato largo es-ES con reloj de 12 horas:
// "01 de junio de 2024, 09:00:00 a. m."
func FormatIssuedAt(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "a. m."
	if t.Hour() >= 12 {
		suffix = "p. m."
	}
	return fmt.Sprintf("%02d de %s de %d, %02d:%02d:%02d %s",
		t.Day(), monthsES[t.Month()-1], t.Year(), h, t.Minute(), t.Second(), suffix)
}

// ItemLine es la línea de detalle de un medicamento.
func ItemLine(it Item) string {
	return fmt.Sprintf("%s, %s. Por %d días", it.Dosage, it.AdministrationRoute, it.DurationDays)
}

var summaryTpl = template.Must(template.New("receta").Funcs(template.FuncMap{
	"line": ItemLine,
}).Parse(`Paciente: {{.Summary.PatientName}}
Identificación: {{.Summary.PatientDNI}}
Fecha: {{.IssuedAt}}
----------------------------------------
{{range .Summary.Items}}{{.Medication}}
  {{line .}}
{{if .Observations}}  {{.Observations}}
{{end}}{{end}}----------------------------------------
{{if .Summary.Observations}}Observaciones: {{.Summary.Observations}}
{{end}}Firma: {{.Summary.Signature}}
`))

// Render arma la receta imprimible.
func Render(sum Summary, loc *time.Location) (string, error) {
	var b bytes.Buffer
	err := summaryTpl.Execute(&b, struct {
		Summary  Summary
		IssuedAt string
	}{sum, FormatIssuedAt(sum.IssuedAt, loc)})
	if err != nil {
		return "", fmt.Errorf("render prescription: %w", err)
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
