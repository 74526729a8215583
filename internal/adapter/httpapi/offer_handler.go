package httpapi

import (
	"net/http"
	"strconv"

	"github.com/arthurCDG/Vinted-clone-server/internal/adapter/httpapi/middleware"
	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/metrics"
	"github.com/arthurCDG/Vinted-clone-server/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// stableOfferFields are the form fields consumed by the offer schema itself;
// everything else submitted on publish passes through into the details map.
var stableOfferFields = map[string]bool{
	"product_name":        true,
	"product_description": true,
	"product_price":       true,
}

type OfferHandler struct {
	offers  OfferService
	metrics *metrics.Manager
	logger  *logger.Logger
}

func NewOfferHandler(offers OfferService, m *metrics.Manager, log *logger.Logger) *OfferHandler {
	return &OfferHandler{
		offers:  offers,
		metrics: m,
		logger:  log.Named("OfferHandler"),
	}
}

type ownerPayload struct {
	ID      string         `json:"id"`
	Account accountPayload `json:"account"`
}

type offerResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"product_name"`
	Description string            `json:"product_description"`
	Price       float64           `json:"product_price"`
	Details     map[string]string `json:"product_details,omitempty"`
	ImageURL    string            `json:"product_image,omitempty"`
	Owner       *ownerPayload     `json:"owner,omitempty"`
}

type offerSummaryPayload struct {
	ID    string  `json:"id"`
	Name  string  `json:"product_name"`
	Price float64 `json:"product_price"`
}

type searchResponse struct {
	Count  int64                  `json:"count"`
	Offers []*offerSummaryPayload `json:"offers"`
}

func toOfferResponse(o *domain.Offer) offerResponse {
	resp := offerResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Details:     o.Details,
		ImageURL:    o.ImageURL,
	}
	if o.Owner != nil {
		resp.Owner = &ownerPayload{
			ID: o.Owner.ID,
			Account: accountPayload{
				Username: o.Owner.Username,
				Avatar:   o.Owner.Avatar,
			},
		}
	}
	return resp
}

// Publish handles POST /offer/publish. The authentication gate has already
// attached the caller to the request context.
func (h *OfferHandler) Publish(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	if err := parseForm(r); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("product_price"), 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product_price"})
		return
	}

	pictureName, pictureData, err := formFile(r, "picture")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid picture upload"})
		return
	}

	details := make(map[string]string)
	for field, values := range r.Form {
		if stableOfferFields[field] || len(values) == 0 {
			continue
		}
		details[field] = values[0]
	}

	offer, err := h.offers.Publish(r.Context(), caller, usecase.PublishInput{
		Name:            r.FormValue("product_name"),
		Description:     r.FormValue("product_description"),
		Price:           price,
		Details:         details,
		PictureFileName: pictureName,
		PictureData:     pictureData,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.metrics.OffersPublishedTotal.Inc()
	respondJSON(w, http.StatusOK, toOfferResponse(offer))
}

// Delete handles DELETE /offer/delete/{id}.
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	if err := h.offers.Delete(r.Context(), caller.ID, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	h.metrics.OffersDeletedTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Success, offer deleted"})
}

// Modify handles PUT /offer/modify/{id}: a partial update, absent fields are
// left untouched.
func (h *OfferHandler) Modify(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	if err := parseForm(r); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}

	var in usecase.ModifyInput
	if values, ok := r.Form["product_name"]; ok && len(values) > 0 {
		in.Name = &values[0]
	}
	if values, ok := r.Form["product_description"]; ok && len(values) > 0 {
		in.Description = &values[0]
	}
	if values, ok := r.Form["product_price"]; ok && len(values) > 0 {
		price, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product_price"})
			return
		}
		in.Price = &price
	}
	details := make(map[string]string)
	for field, values := range r.Form {
		if stableOfferFields[field] || len(values) == 0 {
			continue
		}
		details[field] = values[0]
	}
	in.Details = details

	offer, err := h.offers.Modify(r.Context(), caller.ID, chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOfferResponse(offer))
}

// Search handles GET /offer with the filter/sort/pagination query
// parameters.
func (h *OfferHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := domain.BuildOfferQuery(r.URL.Query())

	summaries, count, err := h.offers.Search(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]*offerSummaryPayload, 0, len(summaries))
	for _, s := range summaries {
		payload = append(payload, &offerSummaryPayload{ID: s.ID, Name: s.Name, Price: s.Price})
	}
	respondJSON(w, http.StatusOK, searchResponse{Count: count, Offers: payload})
}

// GetByID handles GET /offer/{id}; the owner is resolved on every read.
func (h *OfferHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOfferResponse(offer))
}
