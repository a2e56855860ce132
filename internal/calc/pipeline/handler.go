package pipeline

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/options"
)

type Request struct {
	Variables options.Variables `json:"variables"`
	Options   options.Catalog   `json:"options"`
	Savings   string            `json:"savings,omitempty"`
}

type Response struct {
	Bundle
	Warnings []string `json:"warnings,omitempty"`
}

// Respond writes a pipeline outcome. A failed rate-of-return solve still
// answers 200 with the bundle and a warning.
func Respond(w http.ResponseWriter, b Bundle, err error) {
	resp := Response{Bundle: b}
	if err != nil {
		if !errors.Is(err, calcerr.ErrNoConvergence) {
			log.Printf("retrofit calc error: %v", err)
			http.Error(w, err.Error(), calcerr.HTTPStatus(err))
			return
		}
		resp.Warnings = append(resp.Warnings, err.Error())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	basis, err := economics.ParseSavingsBasis(input.Savings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := RunWith(input.Variables, input.Options, Config{Economics: economics.Config{Savings: basis}})
	Respond(w, b, err)
}
