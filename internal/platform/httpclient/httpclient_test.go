package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestDo_SendsJSONAndDecodes(t *testing.T) {
	var gotCookie, gotCT, gotQuery string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotCT = r.Header.Get("Content-Type")
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"patient_id": 7}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}

	var out struct {
		PatientID int `json:"patient_id"`
	}
	err = c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "api/patient",
		Query:  url.Values{"page": {"1"}},
		Header: http.Header{"Cookie": {"session=abc"}},
		In:     map[string]any{"full_name": "Ana Ruiz"},
		Out:    &out,
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if out.PatientID != 7 {
		t.Fatalf("expected decoded id 7, got %d", out.PatientID)
	}
	if gotCookie != "session=abc" || gotCT != "application/json" || gotQuery != "page=1" {
		t.Fatalf("unexpected request: cookie=%q ct=%q query=%q", gotCookie, gotCT, gotQuery)
	}
	if gotBody["full_name"] != "Ana Ruiz" {
		t.Fatalf("unexpected body: %#v", gotBody)
	}
}

func TestDo_Non2xx_ReturnsHTTPErrorWithBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "paciente duplicado", http.StatusConflict)
	}))
	defer ts.Close()

	c := NewWithTransport(ts.URL, time.Second, nil)
	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/patient", In: map[string]any{}})

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusConflict || he.Body != "paciente duplicado" {
		t.Fatalf("unexpected error: %#v", he)
	}
	if StatusOf(err) != http.StatusConflict {
		t.Fatalf("StatusOf = %d", StatusOf(err))
	}
	if he.Error() != "Error 409: paciente duplicado" {
		t.Fatalf("unexpected message %q", he.Error())
	}
}

func TestDo_RelativePathWithoutBaseURL(t *testing.T) {
	c := New(0)
	if err := c.Do(context.Background(), Request{Path: "/api/patient"}); err == nil {
		t.Fatalf("expected error without BaseURL")
	}
}
