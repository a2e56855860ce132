package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/options"
	"Retrofit/internal/calc/pipeline"
)

type Input struct {
	Meta
	Variables options.Variables `json:"variables"`
	Options   options.Catalog   `json:"options"`
	Savings   string            `json:"savings,omitempty"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	basis, err := economics.ParseSavingsBasis(input.Savings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := pipeline.RunWith(input.Variables, input.Options, pipeline.Config{Economics: economics.Config{Savings: basis}})
	if err != nil && !errors.Is(err, calcerr.ErrNoConvergence) {
		log.Printf("report calc error: %v", err)
		http.Error(w, err.Error(), calcerr.HTTPStatus(err))
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input.Meta, b); err != nil {
		log.Printf("report render error: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
