package response

import (
	"encoding/json"
	"net/http"
)

// DefaultErrorMessage is shown when neither the transport nor the upstream
// service produced a usable message.
const DefaultErrorMessage = "Ha ocurrido un error inesperado, vuelve a intentarlo mas tarde."

// Resp is the status block carried by every envelope.
type Resp struct {
	Codigo  int    `json:"codigo"`
	Mensaje string `json:"mensaje"`
}

// Succeeded is the single success predicate used across the client.
//
// Two conventions exist upstream: synthesized envelopes report success as
// codigo 0, while the resource server reports the HTTP status (200/201).
// Both are accepted here instead of checking "!= 0" on reads and "== 200"
// on writes.
func (r Resp) Succeeded() bool {
	return r.Codigo == 0 || (r.Codigo >= 200 && r.Codigo < 300)
}

// Response is the wire envelope {resp:{codigo,mensaje}, data}.
type Response struct {
	Resp   Resp        `json:"resp"`
	Data   interface{} `json:"data,omitempty"`
	Errors interface{} `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Resp: Resp{Codigo: statusCode, Mensaje: message},
		Data: data,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Resp:   Resp{Codigo: statusCode, Mensaje: message},
		Errors: err,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Datos inválidos", errors)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "No autorizado"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Recurso no encontrado"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = DefaultErrorMessage
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Demasiadas solicitudes", nil)
}
