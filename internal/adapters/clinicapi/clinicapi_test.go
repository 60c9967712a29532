package clinicapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-desk/internal/domain/appointments"
	"clinic-desk/internal/domain/patients"
	"clinic-desk/internal/domain/prescriptions"
	"clinic-desk/internal/platform/httpclient"
	"clinic-desk/internal/ports/auth"
)

func newClient(t *testing.T, h http.HandlerFunc) *httpclient.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := httpclient.NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}
	return c
}

func TestPatientsRepo_ListForwardsCookieAndQuery(t *testing.T) {
	var gotCookie, gotQuery string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"patient_id":1,"full_name":"Ana Ruiz","age":34,"gender":"F"}]`))
	})

	ctx := auth.WithCredentials(context.Background(), "sid=abc")
	out, err := NewPatientsRepo(c).List(ctx, patients.ListQuery{Page: 1, Limit: 10000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || out[0].FullName != "Ana Ruiz" {
		t.Fatalf("unexpected list %#v", out)
	}
	if gotCookie != "sid=abc" {
		t.Fatalf("cookie not forwarded: %q", gotCookie)
	}
	if gotQuery != "limit=10000&page=1" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestPatientsRepo_ListNonArrayIsEmpty(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	out, err := NewPatientsRepo(c).List(context.Background(), patients.ListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", out)
	}
}

func TestPatientsRepo_ListMistypedArrayIsAnError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"patient_id":1,"full_name":"Ana Ruiz","age":"34","gender":"F"}]`))
	})

	out, err := NewPatientsRepo(c).List(context.Background(), patients.ListQuery{Page: 1, Limit: 10})
	if err == nil {
		t.Fatalf("expected decode error, got %#v", out)
	}
	if httpclient.StatusOf(err) != 0 {
		t.Fatalf("decode error must not look like an HTTP error: %v", err)
	}
}

func TestPatientsRepo_ListErrorKeepsStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := NewPatientsRepo(c).List(context.Background(), patients.ListQuery{Page: 1, Limit: 10})
	if httpclient.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
}

func TestAppointmentsRepo_PostsPayload(t *testing.T) {
	var got appointments.Payload
	var path string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})

	p := appointments.Payload{AppointmentTime: "2024-06-01T09:00:00.000Z", DoctorID: 1, DurationMinutes: 30, PatientID: 3, Reason: "Control"}
	if err := NewAppointmentsRepo(c).Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if path != appointmentPath || got != p {
		t.Fatalf("unexpected request path=%q body=%#v", path, got)
	}
}

func TestPrescriptionsRepo_DecodesCreated(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != prescriptionPath {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"prescription_id": 44, "issued_at": "2024-06-01T14:00:00Z"}`))
	})

	out, err := NewPrescriptionsRepo(c).Create(context.Background(), prescriptions.Payload{PatientID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID != 44 || out.IssuedAt == nil || out.IssuedAt.Hour() != 14 {
		t.Fatalf("unexpected created %#v", out)
	}
}
