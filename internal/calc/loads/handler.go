package loads

import (
	"encoding/json"
	"log"
	"net/http"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/options"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input options.Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	variant, ok := options.VariantByName(input.Variant)
	if !ok {
		http.Error(w, "Unknown variant", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input.Variables, input.Options, variant)
	if err != nil {
		log.Printf("heat load calc error: %v", err)
		http.Error(w, err.Error(), calcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
