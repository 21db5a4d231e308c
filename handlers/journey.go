package handlers

import (
	"net/http"

	"github.com/aamoria/wellness-api/apierr"
	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/models"
	"github.com/aamoria/wellness-api/response"
	"github.com/aamoria/wellness-api/utils"
)

type productRequest struct {
	ClientType string                `json:"clientType"`
	Product    models.JourneyProduct `json:"product"`
}

// GET /api/journeys
func (h *Handler) ListJourneys(w http.ResponseWriter, r *http.Request) {
	journeys, err := h.Journeys.ListJourneys(r.Context())
	if err != nil {
		h.log.Error("ListJourneys: failed", "error", err)
		response.Error(w, err)
		return
	}
	response.OK(w, journeys)
}

// GET /api/journeys/{slug}
func (h *Handler) GetJourney(w http.ResponseWriter, r *http.Request) {
	j, err := h.Journeys.GetJourney(r.Context(), r.PathValue("slug"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, j)
}

// POST /api/admin/journeys
func (h *Handler) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := h.Journeys.CreateJourney(r.Context(), req.Slug, req.Name, req.Description)
	if err != nil {
		h.log.Info("CreateJourney: rejected", "slug", req.Slug, "error", err)
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, j)
}

// POST /api/admin/journeys/{slug}/products
func (h *Handler) AddJourneyProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	clientType, err := journey.ParseClientType(req.ClientType)
	if err != nil {
		response.Error(w, err)
		return
	}
	if req.Product.ID == "" {
		current, err := h.Journeys.GetJourney(r.Context(), slug)
		if err != nil {
			response.Error(w, err)
			return
		}
		req.Product.ID = journey.NextProductID(slug, clientType, current.Content.Data().Products(clientType))
	}

	j, err := h.Journeys.AddProduct(r.Context(), slug, clientType, req.Product)
	if err != nil {
		h.log.Info("AddJourneyProduct: rejected", "slug", slug, "product_id", req.Product.ID, "error", err)
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, j)
}

// PUT /api/admin/journeys/{slug}/products/{productID}
func (h *Handler) UpdateJourneyProduct(w http.ResponseWriter, r *http.Request) {
	slug, productID := r.PathValue("slug"), r.PathValue("productID")
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	clientType, err := journey.ParseClientType(req.ClientType)
	if err != nil {
		response.Error(w, err)
		return
	}
	j, err := h.Journeys.UpdateProduct(r.Context(), slug, clientType, productID, req.Product)
	if err != nil {
		h.log.Info("UpdateJourneyProduct: rejected", "slug", slug, "product_id", productID, "error", err)
		response.Error(w, err)
		return
	}
	response.OK(w, j)
}

// DELETE /api/admin/journeys/{slug}/products/{productID}?clientType=
func (h *Handler) DeleteJourneyProduct(w http.ResponseWriter, r *http.Request) {
	slug, productID := r.PathValue("slug"), r.PathValue("productID")
	clientType, err := journey.ParseClientType(r.URL.Query().Get("clientType"))
	if err != nil {
		response.Error(w, err)
		return
	}
	j, err := h.Journeys.DeleteProduct(r.Context(), slug, clientType, productID)
	if err != nil {
		h.log.Info("DeleteJourneyProduct: rejected", "slug", slug, "product_id", productID, "error", err)
		response.Error(w, err)
		return
	}
	response.OK(w, j)
}

// PUT /api/admin/journeys/{slug}/settings/{productID}
func (h *Handler) SetProductWaitlist(w http.ResponseWriter, r *http.Request) {
	slug, productID := r.PathValue("slug"), r.PathValue("productID")
	var req struct {
		IsWaitlist *bool `json:"isWaitlist"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.IsWaitlist == nil {
		response.Error(w, apierr.Validation("isWaitlist is required"))
		return
	}
	j, err := h.Journeys.SetWaitlistFlag(r.Context(), slug, productID, *req.IsWaitlist, utils.GetAdminActor(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, j)
}
