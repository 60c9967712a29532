package clinicapi

import (
	"context"
	"net/http"

	"clinic-desk/internal/domain/prescriptions"
	"clinic-desk/internal/platform/httpclient"
)

type PrescriptionsRepo struct {
	http *httpclient.Client
}

func NewPrescriptionsRepo(c *httpclient.Client) *PrescriptionsRepo {
	return &PrescriptionsRepo{http: c}
}

func (r *PrescriptionsRepo) Create(ctx context.Context, p prescriptions.Payload) (prescriptions.Created, error) {
	var out prescriptions.Created
	err := do(ctx, r.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   prescriptionPath,
		In:     p,
		Out:    &out,
	})
	if err != nil {
		return prescriptions.Created{}, err
	}
	return out, nil
}
