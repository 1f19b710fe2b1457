package dto

// ErrorResponse cuerpo de error HTTP.
// RequestID permite cruzar el error con la línea de log de la petición.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Códigos de error expuestos por la API.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidInvoice   = "INVALID_INVOICE"
	CodeExportInProgress = "EXPORT_IN_PROGRESS"
	CodeExportFailed     = "EXPORT_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)
