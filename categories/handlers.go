package categories

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anumeetkumar/restaurants-booking/mq"
	"github.com/anumeetkumar/restaurants-booking/utils"

	"github.com/julienschmidt/httprouter"
)

// API exposes the category store over HTTP. Input validation lives here,
// not in the store.
type API struct {
	Store   *Store
	Emitter *mq.Emitter
}

func NewAPI(store *Store, emitter *mq.Emitter) *API {
	return &API{Store: store, Emitter: emitter}
}

func validateInput(name, description string, price float64) string {
	name = strings.TrimSpace(name)
	if len(name) < 1 || len(name) > 50 {
		return "name must be 1-50 characters"
	}
	if len(description) < 1 || len(description) > 200 {
		return "description must be 1-200 characters"
	}
	if price < 0 {
		return "pricePerPlate must not be negative"
	}
	return ""
}

func (a *API) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categories": a.Store.All()})
}

func (a *API) GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cat, ok := a.Store.GetByID(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"category": cat})
}

func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateInput(in.Name, in.Description, in.PricePerPlate); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	cat, err := a.Store.Add(in)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist category")
		return
	}

	a.Emitter.Emit("category-created", mq.Index{EntityType: "category", Method: "POST", EntityId: cat.ID, Label: cat.Name})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"category": cat})
}

func (a *API) EditCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if patch.Name != nil && (len(strings.TrimSpace(*patch.Name)) < 1 || len(*patch.Name) > 50) {
		utils.RespondWithError(w, http.StatusBadRequest, "name must be 1-50 characters")
		return
	}
	if patch.Description != nil && (len(*patch.Description) < 1 || len(*patch.Description) > 200) {
		utils.RespondWithError(w, http.StatusBadRequest, "description must be 1-200 characters")
		return
	}
	if patch.PricePerPlate != nil && *patch.PricePerPlate < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "pricePerPlate must not be negative")
		return
	}

	cat, err := a.Store.Update(ps.ByName("id"), patch)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist category")
		return
	}

	a.Emitter.Emit("category-updated", mq.Index{EntityType: "category", Method: "PUT", EntityId: cat.ID, Label: cat.Name})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"category": cat})
}

func (a *API) DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := a.Store.Delete(id); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist categories")
		return
	}
	// bookings referencing this category are kept; their category shows as Unknown
	a.Emitter.Emit("category-deleted", mq.Index{EntityType: "category", Method: "DELETE", EntityId: id})
	w.WriteHeader(http.StatusNoContent)
}
