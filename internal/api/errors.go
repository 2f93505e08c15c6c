package api

import "errors"

// Error es el error estructurado que devuelve el cliente. Status 0 indica que no
// hubo respuesta utilizable: falla de transporte o cuerpo ilegible.
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport indica que la falla ocurrió sin respuesta utilizable del servidor.
func (e *Error) IsTransport() bool {
	return e.Status == 0
}

// Message devuelve el texto legible de cualquier error del cliente.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// StatusOf devuelve el status HTTP asociado al error, o 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
