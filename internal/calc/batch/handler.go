package batch

import (
	"encoding/json"
	"log"
	"net/http"

	"Retrofit/internal/calc/calcerr"
)

type Handler struct{}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Run(input)
	if err != nil {
		log.Printf("batch error: %v", err)
		http.Error(w, err.Error(), calcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
