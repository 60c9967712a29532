package prescriptions

import (
	"time"

	"clinic-desk/internal/platform/validation"
)

// ItemForm es un medicamento del formulario "Agregar Receta Médica".
type ItemForm struct {
	Medication          string           `json:"medication"`
	Dosage              string           `json:"dosage"`
	Frequency           string           `json:"frequency"`
	DurationDays        validation.Field `json:"duration_days"`
	AdministrationRoute string           `json:"administration_route"`
	Observations        string           `json:"observations"`
}

type Form struct {
	PatientID    validation.Field `json:"patient_id"`
	Observations string           `json:"observations"`
	Items        []ItemForm       `json:"items"`
}

// Item es un medicamento tal como viaja al backend.
type Item struct {
	Medication          string `json:"medication"`
	Dosage              string `json:"dosage"`
	Frequency           string `json:"frequency"`
	DurationDays        int    `json:"duration_days"`
	AdministrationRoute string `json:"administration_route"`
	Observations        string `json:"observations"`
}

// Payload es el cuerpo de POST /api/prescription.
type Payload struct {
	ElectronicSignature string `json:"electronic_signature"`
	PatientID           int    `json:"patient_id"`
	Observations        string `json:"observations"`
	Items               []Item `json:"items"`
}

// Created es lo que devuelve el backend; ambos campos pueden faltar.
type Created struct {
	ID       int        `json:"prescription_id"`
	IssuedAt *time.Time `json:"issued_at"`
}

// Summary es la receta lista para imprimir o enviar por correo.
type Summary struct {
	PrescriptionID int       `json:"prescription_id,omitempty"`
	PatientName    string    `json:"patient_name"`
	PatientDNI     string    `json:"patient_dni"`
	IssuedAt       time.Time `json:"issued_at"`
	Signature      string    `json:"signature"`
	Observations   string    `json:"observations,omitempty"`
	Items          []Item    `json:"items"`
}
