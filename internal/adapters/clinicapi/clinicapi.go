// Package clinicapi implementa los repositorios de dominio sobre el backend REST
// de la clínica. Todas las llamadas reenvían la cookie de sesión del usuario.
package clinicapi

import (
	"context"
	"net/http"

	"clinic-desk/internal/platform/httpclient"
	"clinic-desk/internal/ports/auth"
)

const (
	patientPath      = "/api/patient"
	appointmentPath  = "/api/medicalappointment"
	prescriptionPath = "/api/prescription"
)

func credentialHeader(ctx context.Context) http.Header {
	cookie := auth.CredentialsFrom(ctx)
	if cookie == "" {
		return nil
	}
	return http.Header{"Cookie": {cookie}}
}

func do(ctx context.Context, c *httpclient.Client, r httpclient.Request) error {
	r.Header = credentialHeader(ctx)
	return c.Do(ctx, r)
}
