package settings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/anumeetkumar/restaurants-booking/mq"
	"github.com/anumeetkumar/restaurants-booking/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

// logo images wider than this are scaled down, aspect ratio kept
const logoMaxWidth = 300

// API exposes the settings singleton over HTTP.
type API struct {
	Store    *Store
	Emitter  *mq.Emitter
	LogoDir  string
	LogoBase string // URL prefix logos are served from, e.g. /static/logopic
}

func NewAPI(store *Store, emitter *mq.Emitter, logoDir, logoBase string) *API {
	return &API{Store: store, Emitter: emitter, LogoDir: logoDir, LogoBase: logoBase}
}

func (a *API) GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"settings": a.Store.Get()})
}

func (a *API) UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if patch.Theme != nil && *patch.Theme != "light" && *patch.Theme != "dark" {
		utils.RespondWithError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name must not be empty")
		return
	}

	updated, err := a.Store.Update(patch)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist settings")
		return
	}

	a.Emitter.Emit("settings-updated", mq.Index{EntityType: "settings", Method: "PUT", Label: updated.Name})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"settings": updated})
}

// UploadLogo accepts a multipart "logo" image, scales it down and stores
// it under LogoDir, then points settings.logo at the served path.
func (a *API) UploadLogo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "logo file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to decode image")
		return
	}
	if img.Bounds().Dx() > logoMaxWidth {
		img = imaging.Resize(img, logoMaxWidth, 0, imaging.Lanczos)
	}

	if err := utils.EnsureDir(a.LogoDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create logo directory")
		return
	}
	fileName := utils.GetUUID() + ".png"
	if err := imaging.Save(img, filepath.Join(a.LogoDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save logo")
		return
	}

	logoURL := fmt.Sprintf("%s/%s", a.LogoBase, fileName)
	updated, err := a.Store.Update(SettingsPatch{Logo: &logoURL})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to persist settings")
		return
	}

	a.Emitter.Emit("settings-logo-uploaded", mq.Index{EntityType: "settings", Method: "POST", Label: fileName})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"settings": updated})
}
