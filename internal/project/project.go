package project

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"Retrofit/internal/auth"
	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/options"
	"Retrofit/internal/calc/pipeline"
	"Retrofit/internal/repo"
)

type Handler struct {
	Repo repo.ProjectRepository
}

type SaveRequest struct {
	Name      string            `json:"name"`
	Variables options.Variables `json:"variables"`
	Options   options.Catalog   `json:"options"`
}

// Register mounts the project routes on an authenticated router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/projects", h.List).Methods("GET")
	r.HandleFunc("/projects", h.Create).Methods("POST")
	r.HandleFunc("/projects/{id:[0-9]+}", h.Get).Methods("GET")
	r.HandleFunc("/projects/{id:[0-9]+}", h.Update).Methods("PUT")
	r.HandleFunc("/projects/{id:[0-9]+}", h.Delete).Methods("DELETE")
	r.HandleFunc("/projects/{id:[0-9]+}/run", h.Run).Methods("POST")
}

func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

func projectID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeSave(w http.ResponseWriter, r *http.Request) (SaveRequest, bool) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return SaveRequest{}, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Variables == nil || req.Options == nil {
		http.Error(w, "Name, variables and options required", http.StatusBadRequest)
		return SaveRequest{}, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	log.Printf("%s error: %v", op, err)
	http.Error(w, "DB error", http.StatusInternalServerError)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projects, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		storeError(w, "ListProjects", err)
		return
	}
	if projects == nil {
		projects = []repo.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.CreateProject(r.Context(), repo.Project{UserID: userID, Name: req.Name, Variables: req.Variables, Options: req.Options})
	if err != nil {
		storeError(w, "CreateProject", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.GetProject(r.Context(), userID, id)
	if err != nil {
		storeError(w, "GetProject", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.UpdateProject(r.Context(), repo.Project{ID: id, UserID: userID, Name: req.Name, Variables: req.Variables, Options: req.Options})
	if err != nil {
		storeError(w, "UpdateProject", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	if err := h.Repo.DeleteProject(r.Context(), userID, id); err != nil {
		storeError(w, "DeleteProject", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Run evaluates a saved project. The savings basis comes from the
// "savings" query parameter.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	basis, err := economics.ParseSavingsBasis(r.URL.Query().Get("savings"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Repo.GetProject(r.Context(), userID, id)
	if err != nil {
		storeError(w, "GetProject", err)
		return
	}
	b, err := pipeline.RunWith(p.Variables, p.Options, pipeline.Config{Economics: economics.Config{Savings: basis}})
	pipeline.Respond(w, b, err)
}
