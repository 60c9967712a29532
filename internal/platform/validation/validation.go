// Package validation agrupa los errores de formulario que se muestran inline
// antes de enviar nada al backend.
package validation

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Error es un fallo de validación del lado cliente. Message se muestra tal cual.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(msg string) error {
	return &Error{Message: msg}
}

// As extrae el *Error si err lo envuelve.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Field es un valor de formulario que llega como string o como número JSON.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = Field(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = Field(n.String())
	return nil
}

func (f Field) String() string { return strings.TrimSpace(string(f)) }

func (f Field) Empty() bool { return f.String() == "" }

// Int interpreta el campo como entero.
func (f Field) Int() (int, bool) {
	n, err := strconv.Atoi(f.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
