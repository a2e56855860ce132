package importer

import (
	"log"
	"net/http"

	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/pipeline"
)

type Handler struct{}

// Workbook runs the pipeline on an uploaded .xlsx file.
func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	p, err := Read(file)
	if err != nil {
		log.Printf("workbook import error: %v", err)
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}
	basis, err := economics.ParseSavingsBasis(r.FormValue("savings"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := pipeline.RunWith(p.Variables, p.Options, pipeline.Config{Economics: economics.Config{Savings: basis}})
	pipeline.Respond(w, b, err)
}
