package organizations

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/anumeetkumar/restaurants-booking/mq"
	"github.com/anumeetkumar/restaurants-booking/utils"

	"github.com/julienschmidt/httprouter"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// API exposes the organization store over HTTP.
type API struct {
	Store   *Store
	Emitter *mq.Emitter
}

func NewAPI(store *Store, emitter *mq.Emitter) *API {
	return &API{Store: store, Emitter: emitter}
}

func validateInput(in OrganizationInput) string {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 100 {
		return "name is required (max 100 characters)"
	}
	if !emailRe.MatchString(in.Email) {
		return "email is invalid"
	}
	if strings.TrimSpace(in.Phone) == "" || len(in.Phone) > 20 {
		return "phone is required (max 20 characters)"
	}
	return ""
}

func (a *API) GetOrganizations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"organizations": a.Store.All()})
}

func (a *API) GetOrganization(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	org, ok := a.Store.GetByID(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "organization not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"organization": org})
}

func (a *API) CreateOrganization(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in OrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateInput(in); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	org, err := a.Store.Add(in)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist organization")
		return
	}

	a.Emitter.Emit("organization-created", mq.Index{EntityType: "organization", Method: "POST", EntityId: org.ID, Label: org.Name})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"organization": org})
}

func (a *API) EditOrganization(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch OrganizationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if patch.Name != nil && (strings.TrimSpace(*patch.Name) == "" || len(*patch.Name) > 100) {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required (max 100 characters)")
		return
	}
	if patch.Email != nil && !emailRe.MatchString(*patch.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "email is invalid")
		return
	}
	if patch.Phone != nil && (strings.TrimSpace(*patch.Phone) == "" || len(*patch.Phone) > 20) {
		utils.RespondWithError(w, http.StatusBadRequest, "phone is required (max 20 characters)")
		return
	}

	org, err := a.Store.Update(ps.ByName("id"), patch)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist organization")
		return
	}

	a.Emitter.Emit("organization-updated", mq.Index{EntityType: "organization", Method: "PUT", EntityId: org.ID, Label: org.Name})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"organization": org})
}

func (a *API) DeleteOrganization(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := a.Store.Delete(id); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist organizations")
		return
	}
	a.Emitter.Emit("organization-deleted", mq.Index{EntityType: "organization", Method: "DELETE", EntityId: id})
	w.WriteHeader(http.StatusNoContent)
}
