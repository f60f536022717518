package qr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anumeetkumar/restaurants-booking/bookings"
	"github.com/anumeetkumar/restaurants-booking/categories"
	"github.com/anumeetkumar/restaurants-booking/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// API serves rendered QR codes and resolves scanned payloads against the
// booking and category stores.
type API struct {
	Bookings   *bookings.Store
	Categories *categories.Store
}

func NewAPI(b *bookings.Store, c *categories.Store) *API {
	return &API{Bookings: b, Categories: c}
}

func qrSize(r *http.Request) int {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return size
}

// BookingQR serves the booking's check-in code as a PNG.
func (a *API) BookingQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, ok := a.Bookings.GetByID(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	payload := b.QRCode
	if payload == "" {
		payload = BookingPayload(b.ID)
	}
	png, err := EncodePNG(payload, qrSize(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// CategoryQR serves the category deep-link code as a PNG.
func (a *API) CategoryQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cat, ok := a.Categories.GetByID(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}
	png, err := EncodePNG(CategoryPayload(cat.ID), qrSize(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// Scan resolves a decoded payload string to the record it points at.
// Orphaned or unknown references come back 404 so the scanning client can
// show its not-found state instead of failing.
func (a *API) Scan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "payload is required")
		return
	}

	kind, id, err := Parse(req.Payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unrecognized QR payload")
		return
	}

	switch kind {
	case KindBooking:
		b, ok := a.Bookings.GetByID(id)
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "booking not found")
			return
		}
		resp := utils.M{"kind": KindBooking, "booking": b}
		if cat, ok := a.Categories.GetByID(b.CategoryID); ok {
			resp["category"] = cat
		}
		utils.RespondWithJSON(w, http.StatusOK, resp)
	case KindCategory:
		cat, ok := a.Categories.GetByID(id)
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"kind": KindCategory, "category": cat})
	}
}

// PrintSheet builds a printable PDF of QR codes for the selected
// categories and bookings, one labelled cell per code.
func (a *API) PrintSheet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		CategoryIDs []string `json:"categoryIds"`
		BookingIDs  []string `json:"bookingIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.CategoryIDs) == 0 && len(req.BookingIDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing selected")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Restaurant QR Codes")
	pdf.Ln(14)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	cell := func(title, subtitle, payload, imgName string) error {
		png, err := EncodePNG(payload, 256)
		if err != nil {
			return err
		}
		pdf.RegisterImageOptionsReader(imgName, imageOpts, bytes.NewReader(png))

		if pdf.GetY() > 230 {
			pdf.AddPage()
		}
		y := pdf.GetY()
		pdf.ImageOptions(imgName, 10, y, 40, 40, false, imageOpts, 0, "")
		pdf.SetXY(55, y+8)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.SetXY(55, y+16)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, subtitle)
		pdf.SetY(y + 46)
		return nil
	}

	for _, id := range req.CategoryIDs {
		cat, ok := a.Categories.GetByID(id)
		if !ok {
			continue
		}
		sub := fmt.Sprintf("%s per plate", utils.FormatCurrency(cat.PricePerPlate))
		if err := cell(cat.Name, sub, CategoryPayload(cat.ID), "cat-"+cat.ID); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR code")
			return
		}
	}
	for _, id := range req.BookingIDs {
		b, ok := a.Bookings.GetByID(id)
		if !ok {
			continue
		}
		payload := b.QRCode
		if payload == "" {
			payload = BookingPayload(b.ID)
		}
		sub := fmt.Sprintf("%d persons - %s", b.NoOfPersons, b.Phone)
		if err := cell(b.Name, sub, payload, "bk-"+b.ID); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR code")
			return
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=qr-codes.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
