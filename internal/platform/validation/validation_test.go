package validation

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestField_AcceptsStringOrNumber(t *testing.T) {
	var in struct {
		A Field `json:"a"`
		B Field `json:"b"`
		C Field `json:"c"`
		D Field `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12","b":7,"c":null,"d":" "}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n, ok := in.A.Int(); !ok || n != 12 {
		t.Fatalf("a: %v %v", n, ok)
	}
	if n, ok := in.B.Int(); !ok || n != 7 {
		t.Fatalf("b: %v %v", n, ok)
	}
	if !in.C.Empty() || !in.D.Empty() {
		t.Fatalf("c and d should be empty")
	}
	if _, ok := Field("7 días").Int(); ok {
		t.Fatalf("non numeric field should not parse")
	}
}

func TestAs_Unwraps(t *testing.T) {
	err := fmt.Errorf("create: %w", New("Completa todos los campos obligatorios"))
	ve, ok := As(err)
	if !ok || ve.Message != "Completa todos los campos obligatorios" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := As(fmt.Errorf("other")); ok {
		t.Fatalf("plain error is not a validation error")
	}
}
