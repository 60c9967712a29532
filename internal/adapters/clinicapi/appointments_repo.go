package clinicapi

import (
	"context"
	"net/http"

	"clinic-desk/internal/domain/appointments"
	"clinic-desk/internal/platform/httpclient"
)

type AppointmentsRepo struct {
	http *httpclient.Client
}

func NewAppointmentsRepo(c *httpclient.Client) *AppointmentsRepo {
	return &AppointmentsRepo{http: c}
}

func (r *AppointmentsRepo) Create(ctx context.Context, p appointments.Payload) error {
	return do(ctx, r.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   appointmentPath,
		In:     p,
	})
}
