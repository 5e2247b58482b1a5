package billing

import (
	"encoding/json"
	"net/http"
)

// response is the uniform body for webhook acknowledgements and
// errors, matching what the payment provider dashboard displays.
type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
