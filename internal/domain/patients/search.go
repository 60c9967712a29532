package patients

import (
	"strconv"
	"strings"
)

// Matches: substring sin distinguir mayúsculas sobre el nombre o el id.
func Matches(p Patient, text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(strings.ToLower(p.FullName), lower) ||
		strings.Contains(strconv.Itoa(p.ID), lower)
}

// Search devuelve el subconjunto que matchea, en el orden del roster.
// Texto vacío devuelve todo.
func Search(roster []Patient, text string) []Patient {
	out := make([]Patient, 0, len(roster))
	for _, p := range roster {
		if Matches(p, text) {
			out = append(out, p)
		}
	}
	return out
}
