package patients

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters son los criterios estructurados pensados para filtrar en el backend.
// Cero / "" significa sin restricción.
type Filters struct {
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

func (f Filters) Normalize() Filters {
	if f.MinAge < 0 {
		f.MinAge = 0
	}
	if f.MaxAge < 0 {
		f.MaxAge = 0
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Gender = strings.TrimSpace(f.Gender)
	return f
}

func (f Filters) IsZero() bool {
	f = f.Normalize()
	return f.MinAge == 0 && f.MaxAge == 0 && f.Name == "" && f.Gender == ""
}

// Match aplica los criterios a un paciente (backend en memoria).
func (f Filters) Match(r Record) bool {
	f = f.Normalize()
	if f.MinAge > 0 && r.Age < f.MinAge {
		return false
	}
	if f.MaxAge > 0 && r.Age > f.MaxAge {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(r.FullName), strings.ToLower(f.Name)) {
		return false
	}
	if code := GenderCode(f.Gender); code != "" && GenderCode(r.Gender) != code {
		return false
	}
	return true
}

// ListQuery son los parámetros de GET /api/patient.
type ListQuery struct {
	Page    int
	Limit   int
	Filters *Filters // nil => sin parámetros de filtro
}

// Values arma la query: page, limit y, si hay filtros, minAge/maxAge siempre
// (0 = sin límite) y name/gender solo si no están vacíos.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Filters == nil {
		return v
	}
	f := q.Filters.Normalize()
	v.Set("minAge", strconv.Itoa(f.MinAge))
	v.Set("maxAge", strconv.Itoa(f.MaxAge))
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Gender != "" {
		v.Set("gender", f.Gender)
	}
	return v
}

// FilterURL es la URL que correspondería a los filtros en la página actual.
func FilterURL(apiURL string, page, perPage int, f Filters) string {
	q := ListQuery{Page: page, Limit: perPage, Filters: &f}
	return strings.TrimRight(apiURL, "/") + "/api/patient?" + q.Values().Encode()
}
