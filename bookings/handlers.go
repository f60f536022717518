package bookings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anumeetkumar/restaurants-booking/mq"
	"github.com/anumeetkumar/restaurants-booking/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	minPersons = 1
	maxPersons = 20
)

// API exposes the booking store over HTTP. Input validation mirrors the
// booking form; the store itself accepts any well-typed input.
type API struct {
	Store   *Store
	Emitter *mq.Emitter
}

func NewAPI(store *Store, emitter *mq.Emitter) *API {
	return &API{Store: store, Emitter: emitter}
}

func validateInput(in BookingInput) string {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 50 {
		return "name is required (max 50 characters)"
	}
	if strings.TrimSpace(in.Phone) == "" || len(in.Phone) > 20 {
		return "phone is required (max 20 characters)"
	}
	if in.NoOfPersons < minPersons || in.NoOfPersons > maxPersons {
		return "noOfPersons must be between 1 and 20"
	}
	if in.CategoryID == "" {
		return "categoryId is required"
	}
	return ""
}

func (a *API) GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": a.Store.All()})
}

func (a *API) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, ok := a.Store.GetByID(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
}

func (a *API) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in BookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateInput(in); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	b, err := a.Store.Add(in)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist booking")
		return
	}

	a.Emitter.Emit("booking-created", mq.Index{EntityType: "booking", Method: "POST", EntityId: b.ID, Label: b.Name})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": b})
}

func (a *API) EditBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if patch.Name != nil && (strings.TrimSpace(*patch.Name) == "" || len(*patch.Name) > 50) {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required (max 50 characters)")
		return
	}
	if patch.Phone != nil && (strings.TrimSpace(*patch.Phone) == "" || len(*patch.Phone) > 20) {
		utils.RespondWithError(w, http.StatusBadRequest, "phone is required (max 20 characters)")
		return
	}
	if patch.NoOfPersons != nil && (*patch.NoOfPersons < minPersons || *patch.NoOfPersons > maxPersons) {
		utils.RespondWithError(w, http.StatusBadRequest, "noOfPersons must be between 1 and 20")
		return
	}

	b, err := a.Store.Update(ps.ByName("id"), patch)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist booking")
		return
	}

	a.Emitter.Emit("booking-updated", mq.Index{EntityType: "booking", Method: "PUT", EntityId: b.ID, Label: b.Name})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
}

// CheckInBooking marks a booking as arrived. Safe to call twice; the
// second call changes nothing except updatedAt.
func (a *API) CheckInBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := a.Store.CheckIn(ps.ByName("id"))
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist booking")
		return
	}

	a.Emitter.Emit("booking-checked-in", mq.Index{EntityType: "booking", Method: "PUT", EntityId: b.ID, Label: b.Name})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
}

func (a *API) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := a.Store.Delete(id); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist bookings")
		return
	}
	a.Emitter.Emit("booking-deleted", mq.Index{EntityType: "booking", Method: "DELETE", EntityId: id})
	w.WriteHeader(http.StatusNoContent)
}
