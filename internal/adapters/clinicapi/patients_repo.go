package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-desk/internal/domain/patients"
	"clinic-desk/internal/platform/httpclient"
)

type PatientsRepo struct {
	http *httpclient.Client
}

func NewPatientsRepo(c *httpclient.Client) *PatientsRepo {
	return &PatientsRepo{http: c}
}

// List: una respuesta que no sea un arreglo se toma como lista vacía.
func (r *PatientsRepo) List(ctx context.Context, q patients.ListQuery) ([]patients.Record, error) {
	var raw json.RawMessage
	err := do(ctx, r.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   patientPath,
		Query:  q.Values(),
		Out:    &raw,
	})
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []patients.Record{}, nil
	}
	var out []patients.Record
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	if out == nil {
		out = []patients.Record{}
	}
	return out, nil
}

func (r *PatientsRepo) Create(ctx context.Context, in patients.NewPatient) (patients.Record, error) {
	var out patients.Record
	err := do(ctx, r.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   patientPath,
		In:     in,
		Out:    &out,
	})
	if err != nil {
		return patients.Record{}, err
	}
	// algunos backends no devuelven el registro; completamos con lo enviado
	if out.FullName == "" {
		out.FullName = in.FullName
		out.Age = in.Age
		out.Gender = in.Gender
		out.DNI = in.DNI
	}
	return out, nil
}
