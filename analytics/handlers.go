package analytics

import (
	"net/http"
	"strconv"

	"github.com/anumeetkumar/restaurants-booking/utils"

	"github.com/julienschmidt/httprouter"
)

type API struct {
	Service *Service
}

func NewAPI(service *Service) *API {
	return &API{Service: service}
}

func (a *API) GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"summary": a.Service.Summary()})
}

func (a *API) GetTrend(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"trend": a.Service.Trend()})
}

func (a *API) GetCategoryPerformance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categories": a.Service.PerCategory()})
}

func (a *API) GetRecent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activity": a.Service.Recent(limit)})
}
