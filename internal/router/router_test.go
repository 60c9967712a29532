package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"clinic-desk/internal/adapters/notify"
	"clinic-desk/internal/config"
	"clinic-desk/internal/domain/patients"
	"clinic-desk/internal/platform/debounce/debouncetest"
	"clinic-desk/internal/router"
)

type viewBody struct {
	ID    string         `json:"id"`
	State patients.State `json:"state"`
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.Config == nil {
		cfg := config.Defaults()
		cfg.ClinicTZ = "UTC"
		opts.Config = cfg
	}
	h, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PatientView(t *testing.T) {
	clock := debouncetest.New()
	views := patients.NewRegistry(time.Minute, nil)
	ts := newServer(t, router.Options{Clock: clock, Views: views})

	userID := "doc-1"

	// 1) Montar la vista: roster de 12, página 1 con 9 tarjetas
	var mounted viewBody
	{
		st, body := doReq(t, ts.URL, "POST", "/patient-views", userID, nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 mount, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &mounted)
		s := mounted.State
		if !s.Loaded || s.Total != 12 || s.TotalPages != 2 || len(s.Cards) != 9 || s.Page != 1 {
			t.Fatalf("unexpected mounted state %+v", s)
		}
		if s.Cards[0].DetailPath != "/paciente/1" || s.Cards[0].LastVisit != "Hace poco" {
			t.Fatalf("unexpected card %+v", s.Cards[0])
		}
	}
	viewPath := "/patient-views/" + mounted.ID

	// 2) Página 2 tiene 3
	{
		st, body := doReq(t, ts.URL, "PUT", viewPath+"/page", userID, map[string]any{"page": 2})
		if st != http.StatusOK {
			t.Fatalf("expected 200 page, got %d body=%s", st, string(body))
		}
		var vb viewBody
		mustJSON(t, body, &vb)
		if len(vb.State.Cards) != 3 || vb.State.Cards[0].ID != 10 {
			t.Fatalf("unexpected page 2 %+v", vb.State)
		}
	}

	// 3) Tres búsquedas seguidas: solo la última se aplica, tras el debounce
	for _, text := range []string{"a", "an", "2"} {
		st, body := doReq(t, ts.URL, "PUT", viewPath+"/search", userID, map[string]any{"text": text})
		if st != http.StatusAccepted {
			t.Fatalf("expected 202 search, got %d body=%s", st, string(body))
		}
		clock.Advance(100 * time.Millisecond)
	}
	{
		_, body := doReq(t, ts.URL, "GET", viewPath, userID, nil)
		var vb viewBody
		mustJSON(t, body, &vb)
		if vb.State.Search != "" || vb.State.Typed != "2" || !vb.State.Searching {
			t.Fatalf("search applied before debounce: %+v", vb.State)
		}
	}
	clock.Advance(400 * time.Millisecond)
	{
		_, body := doReq(t, ts.URL, "GET", viewPath, userID, nil)
		var vb viewBody
		mustJSON(t, body, &vb)
		s := vb.State
		if s.Search != "2" || s.Page != 1 || s.Total != 2 || s.Cards[0].ID != 2 || s.Cards[1].ID != 12 {
			t.Fatalf("unexpected state after debounce %+v", s)
		}
	}

	// 4) Filtros en modo record: se registran, la lista no cambia
	{
		st, body := doReq(t, ts.URL, "PUT", viewPath+"/filters", userID, map[string]any{"min_age": 40, "gender": "Femenino"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 filters, got %d body=%s", st, string(body))
		}
		var vb viewBody
		mustJSON(t, body, &vb)
		if vb.State.Total != 2 || vb.State.Filters.MinAge != 40 {
			t.Fatalf("unexpected filtered state %+v", vb.State)
		}
		if !strings.Contains(vb.State.FilterURL, "/api/patient?") || !strings.Contains(vb.State.FilterURL, "minAge=40") {
			t.Fatalf("unexpected filter url %q", vb.State.FilterURL)
		}
	}

	// 5) Alta desde la vista: limpia filtros y vuelve a página 1
	{
		st, body := doReq(t, ts.URL, "POST", viewPath+"/patients", userID, map[string]any{
			"full_name": "Marta Gil", "age": 22, "gender": "F",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
		}
		var out struct {
			Patient struct {
				ID int `json:"id"`
			} `json:"patient"`
			State patients.State `json:"state"`
		}
		mustJSON(t, body, &out)
		if out.Patient.ID != 13 || !out.State.Filters.IsZero() || out.State.Page != 1 {
			t.Fatalf("unexpected create response %+v", out)
		}
	}

	// 6) Validación inline
	{
		st, body := doReq(t, ts.URL, "POST", "/patients", userID, map[string]any{"full_name": ""})
		if st != http.StatusBadRequest || strings.TrimSpace(string(body)) != "Completa todos los campos obligatorios" {
			t.Fatalf("expected 400 validation, got %d body=%s", st, string(body))
		}
	}

	// 7) Desmontar cierra la vista
	{
		st, _ := doReq(t, ts.URL, "DELETE", viewPath, userID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 unmount, got %d", st)
		}
		if views.Len() != 0 {
			t.Fatalf("expected registry empty, got %d", views.Len())
		}
		st, _ = doReq(t, ts.URL, "GET", viewPath, userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after unmount, got %d", st)
		}
	}
}

func TestHTTP_StatelessListAndOptions(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/patients?q=an", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
	}
	var page struct {
		Total int             `json:"total"`
		Cards []patients.Card `json:"cards"`
	}
	mustJSON(t, body, &page)
	if page.Total != 2 || page.Cards[0].ID != 1 || page.Cards[1].ID != 6 {
		t.Fatalf("unexpected search result %+v", page)
	}

	st, body = doReq(t, ts.URL, "GET", "/patients/options", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 options, got %d", st)
	}
	var opts []patients.Option
	mustJSON(t, body, &opts)
	if len(opts) != 12 || opts[0].Label != "Ana Ruiz - 34 años (Femenino)" {
		t.Fatalf("unexpected options %+v", opts[:1])
	}
}

func TestHTTP_AppointmentsPrescriptionsAndAudit(t *testing.T) {
	outbox := notify.NewOutbox(nil)
	ts := newServer(t, router.Options{Mailer: outbox})
	userID := "doc-7"

	// Cita: 2024-06-01 09:00 en UTC
	{
		st, body := doReqAs(t, ts.URL, "POST", "/appointments", userID, "Dra. Ruiz", map[string]any{
			"patient_id": "1", "date": "2024-06-01", "time": "09:00", "duration": 30, "reason": "Control",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 appointment, got %d body=%s", st, string(body))
		}
		var p map[string]any
		mustJSON(t, body, &p)
		if p["appointment_time"] != "2024-06-01T09:00:00.000Z" || p["doctor_id"] != float64(1) {
			t.Fatalf("unexpected appointment %v", p)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments", userID, map[string]any{"patient_id": "1"})
		if st != http.StatusBadRequest || strings.TrimSpace(string(body)) != "Completa todos los campos obligatorios" {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
	}

	// Receta
	var created struct {
		Summary json.RawMessage `json:"summary"`
		Text    string          `json:"text"`
	}
	{
		st, body := doReqAs(t, ts.URL, "POST", "/prescriptions", userID, "Dra. Ruiz", map[string]any{
			"patient_id":   1,
			"observations": "Reposo",
			"items": []map[string]any{{
				"medication": "Amoxicilina", "dosage": "500mg", "frequency": "cada 8 horas",
				"duration_days": "7", "administration_route": "Oral",
			}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 prescription, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &created)
		for _, want := range []string{"Paciente: Ana Ruiz", "Identificación: 40123456", "500mg, Oral. Por 7 días", "Firma: Dra. Ruiz"} {
			if !strings.Contains(created.Text, want) {
				t.Fatalf("summary text missing %q:\n%s", want, created.Text)
			}
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/prescriptions", userID, map[string]any{"patient_id": 1, "items": []any{}})
		if st != http.StatusBadRequest || strings.TrimSpace(string(body)) != "Por favor complete todos los campos requeridos en cada medicamento" {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
	}
	{
		req := httptestRequest(t, "POST", ts.URL+"/prescriptions/print", "", "", bytes.NewReader(created.Summary))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("print: %v", err)
		}
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || string(b) != created.Text {
			t.Fatalf("print mismatch %d:\n%s", resp.StatusCode, string(b))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/prescriptions/send", userID, map[string]any{
			"to": "ana@correo.pe", "summary": json.RawMessage(created.Summary),
		})
		if st != http.StatusAccepted || !strings.Contains(string(body), "Correo enviado con la receta") {
			t.Fatalf("expected 202 send, got %d body=%s", st, string(body))
		}
		if sent := outbox.Sent(); len(sent) != 1 || sent[0].To != "ana@correo.pe" {
			t.Fatalf("unexpected outbox %+v", sent)
		}
	}

	// Auditoría: cita, receta y correo (las validaciones no se registran)
	{
		st, body := doReq(t, ts.URL, "GET", "/audit", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 audit, got %d", st)
		}
		var entries []map[string]any
		mustJSON(t, body, &entries)
		if len(entries) != 3 {
			t.Fatalf("expected 3 audit entries, got %d: %s", len(entries), string(body))
		}
		for _, e := range entries {
			if e["actor_id"] != userID || e["outcome"] != "ok" {
				t.Fatalf("unexpected entry %v", e)
			}
		}
	}
}

// fakeClinic es un backend clínico mínimo.
type fakeClinic struct {
	mu      sync.Mutex
	cookies []string
	queries []string
}

func (f *fakeClinic) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.cookies = append(f.cookies, r.Header.Get("Cookie"))
	f.mu.Unlock()

	if r.Header.Get("Cookie") != "sid=ok" {
		http.Error(w, "no autenticado", http.StatusUnauthorized)
		return
	}
	switch {
	case r.URL.Path == "/api/auth/me":
		_, _ = w.Write([]byte(`{"id": 5, "full_name": "Dr. Gómez"}`))
	case r.URL.Path == "/api/patient" && r.Method == http.MethodGet:
		f.mu.Lock()
		f.queries = append(f.queries, r.URL.RawQuery)
		f.mu.Unlock()
		if r.URL.Query().Get("gender") == "M" {
			_, _ = w.Write([]byte(`[{"patient_id": 2, "full_name": "Bruno Diaz", "age": 52, "gender": "M"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"patient_id": 1, "full_name": "Ana Ruiz", "age": 34, "gender": "F"},
			{"patient_id": 2, "full_name": "Bruno Diaz", "age": 52, "gender": "M"}]`))
	case r.URL.Path == "/api/patient" && r.Method == http.MethodPost:
		http.Error(w, "paciente duplicado", http.StatusConflict)
	case r.URL.Path == "/api/medicalappointment":
		var p map[string]any
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p["doctor_id"] != float64(5) {
			http.Error(w, "doctor inválido", http.StatusBadRequest)
			return
		}
		http.Error(w, "agenda llena", http.StatusConflict)
	default:
		http.NotFound(w, r)
	}
}

func TestHTTP_UpstreamClinicBackend(t *testing.T) {
	upstream := &fakeClinic{}
	api := httptest.NewServer(upstream)
	defer api.Close()

	cfg := config.Defaults()
	cfg.ClinicTZ = "UTC"
	cfg.ClinicAPIURL = api.URL
	cfg.FilterMode = "server"
	ts := newServer(t, router.Options{Config: cfg})

	// sin sesión: el backend rechaza y el 401 se propaga
	{
		req := httptestRequest(t, "GET", ts.URL+"/patients", "", "", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 without cookie, got %d", resp.StatusCode)
		}
	}

	// vista con filtros de servidor
	var vb viewBody
	{
		req := httptestRequest(t, "POST", ts.URL+"/patient-views", "sid=ok", "", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		mustJSON(t, b, &vb)
		if vb.State.Total != 2 {
			t.Fatalf("expected roster of 2, got %+v", vb.State)
		}
	}
	{
		b, _ := json.Marshal(map[string]any{"gender": "M"})
		req := httptestRequest(t, "PUT", ts.URL+"/patient-views/"+vb.ID+"/filters", "sid=ok", "", bytes.NewReader(b))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		var got viewBody
		mustJSON(t, body, &got)
		if got.State.Total != 1 || got.State.Cards[0].ID != 2 {
			t.Fatalf("expected server-filtered list, got %+v", got.State)
		}
	}
	upstream.mu.Lock()
	lastQuery := upstream.queries[len(upstream.queries)-1]
	upstream.mu.Unlock()
	if !strings.Contains(lastQuery, "gender=M") || !strings.Contains(lastQuery, "limit=10000") {
		t.Fatalf("unexpected upstream query %q", lastQuery)
	}

	// alta rechazada: el texto del backend llega tal cual
	{
		b, _ := json.Marshal(map[string]any{"full_name": "Ana Ruiz", "age": 34, "gender": "F"})
		req := httptestRequest(t, "POST", ts.URL+"/patients", "sid=ok", "", bytes.NewReader(b))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadGateway || strings.TrimSpace(string(body)) != "paciente duplicado" {
			t.Fatalf("expected 502 with upstream text, got %d body=%s", resp.StatusCode, string(body))
		}
	}

	// cita: doctor_id sale de la sesión; el texto del backend es el mensaje
	{
		b, _ := json.Marshal(map[string]any{"patient_id": 1, "date": "2024-06-01", "time": "09:00", "reason": "Control"})
		req := httptestRequest(t, "POST", ts.URL+"/appointments", "sid=ok", "", bytes.NewReader(b))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadGateway || strings.TrimSpace(string(body)) != "agenda llena" {
			t.Fatalf("expected 502 with upstream text, got %d body=%s", resp.StatusCode, string(body))
		}
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %s", st, string(body))
	}
	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/patient-views") {
		t.Fatalf("unexpected swagger doc %d", st)
	}
}

// ---- helpers ----

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	return doReqAs(t, baseURL, method, path, userID, "", payload)
}

func doReqAs(t *testing.T, baseURL, method, path, userID, userName string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req := httptestRequest(t, method, baseURL+path, "", userID, body)
	if userName != "" {
		req.Header.Set("X-Debug-User-Name", userName)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func httptestRequest(t *testing.T, method, url, cookie, userID string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	return req
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal %s: %v", string(b), err)
	}
}
