package dto

import "provider-directory/pkg/validator"

var PaymentMethods = []string{
	"Efectivo",
	"Tarjeta de Crédito",
	"Tarjeta de Débito",
	"Transferencia",
	"Cheque",
}

var Facilities = []string{
	"Estacionamiento",
	"WiFi",
	"Cafetería",
	"Farmacia",
	"Laboratorio",
	"Rayos X",
	"Acceso para discapacitados",
}

var fieldMessages = map[string]string{
	"id.required":          "El ID del proveedor es requerido",
	"name.required":        "El nombre es requerido",
	"phone.required":       "El teléfono es requerido",
	"email.required":       "El correo es requerido",
	"email.email":          "Formato de correo inválido",
	"website.url":          "Formato de URL inválido",
	"linkedIn.url":         "Formato de URL inválido",
	"active.gte":           "No puede ser negativo",
	"total.gte":            "No puede ser negativo",
	"active.ltefield":      "Los activos no pueden superar el total",
	"providerId.required":  "El ID del proveedor es requerido",
	"address.required":     "La dirección es requerida",
	"openingTime.required": "La hora de apertura es requerida",
	"closingTime.required": "La hora de cierre es requerida",
	"openingTime.datetime": "La hora de apertura debe tener el formato HH:MM",
	"closingTime.datetime": "La hora de cierre debe tener el formato HH:MM",
	"paymentMethods.min":   "Seleccione al menos un método de pago",
	"payment_method":       "Método de pago no reconocido",
	"facility":             "Instalación no reconocida",
	"minutes.gte":          "La duración debe ser de al menos 1 minuto",
	"time.gt":              "La duración debe ser mayor que cero",
	"entity.oneof":         "Tipo de recurso no reconocido",
	"limit.lte":            "El límite máximo es 500",
}

// NewValidator returns the validator configured with the directory's
// vocabularies and Spanish field messages.
func NewValidator() *validator.CustomValidator {
	return validator.NewValidator(
		validator.WithVocabulary("payment_method", PaymentMethods),
		validator.WithVocabulary("facility", Facilities),
		validator.WithMessages(fieldMessages),
	)
}
