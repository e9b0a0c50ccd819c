package httpapi

import (
	"net/http"

	"github.com/huangsam/workbench/core"
	"github.com/huangsam/workbench/schema"
)

type dogsHandler struct {
	svc *core.DogService
}

// NewDogsHandler routes the dogs CRUD endpoints:
//
//	GET    /      list with optional name, sort and order query parameters
//	GET    /{id}  fetch one
//	POST   /      create
//	PATCH  /{id}  partial update
//	DELETE /{id}  delete
func NewDogsHandler(svc *core.DogService) http.Handler {
	h := &dogsHandler{svc: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.list)
	mux.HandleFunc("POST /{$}", h.create)
	mux.HandleFunc("GET /{id}", h.get)
	mux.HandleFunc("PATCH /{id}", h.update)
	mux.HandleFunc("DELETE /{id}", h.delete)
	return mux
}

func (h *dogsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dogs, err := h.svc.List(r.Context(), schema.ListQuery{
		Name:  q.Get("name"),
		Sort:  q.Get("sort"),
		Order: schema.ParseSortOrder(q.Get("order")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dogs)
}

func (h *dogsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseDogID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	dog, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dog)
}

func (h *dogsHandler) create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r, w)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dog, err := h.svc.Create(r.Context(), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, dog)
}

func (h *dogsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseDogID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := decodeFields(r, w)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dog, err := h.svc.Update(r.Context(), id, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dog)
}

func (h *dogsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseDogID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	dog, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, schema.DeletedDog{Deleted: dog})
}
