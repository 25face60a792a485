package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/server/http/dto"
	"github.com/bestchance/orderdesk/internal/usecase"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// DraftHandler exposes the order wizard.
type DraftHandler struct {
	facade DraftFacade
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(facade DraftFacade) *DraftHandler {
	return &DraftHandler{facade: facade}
}

// Start handles POST /api/projects/:projectID/drafts.
func (h *DraftHandler) Start(c *gin.Context) {
	var req dto.StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	d, err := h.facade.StartDraft(c.Request.Context(), CurrentSession(c).Username, usecase.StartRequest{
		ProjectID: c.Param("projectID"),
		Flow:      req.Flow,
		State:     req.State,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDraftResponse(d))
}

// Get handles GET /api/drafts/:draftID.
func (h *DraftHandler) Get(c *gin.Context) {
	h.respond(c, h.facade.Draft)
}

// Update handles PATCH /api/drafts/:draftID.
func (h *DraftHandler) Update(c *gin.Context) {
	var patch wizard.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c, func(ctx context.Context, owner, id string) (usecase.Draft, error) {
		return h.facade.UpdateDraft(ctx, owner, id, patch)
	})
}

// ToggleMaterial handles POST /api/drafts/:draftID/materials/toggle.
func (h *DraftHandler) ToggleMaterial(c *gin.Context) {
	var item model.MaterialItem
	if err := c.ShouldBindJSON(&item); err != nil || item.MaterialName == "" || item.SupplierName == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c, func(ctx context.Context, owner, id string) (usecase.Draft, error) {
		return h.facade.ToggleMaterial(ctx, owner, id, item)
	})
}

// SetQuantity handles PUT /api/drafts/:draftID/materials/quantity.
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Item.MaterialName == "" || req.Item.SupplierName == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c, func(ctx context.Context, owner, id string) (usecase.Draft, error) {
		return h.facade.SetMaterialQuantity(ctx, owner, id, req.Item, req.Value)
	})
}

// ToggleFleet handles POST /api/drafts/:draftID/fleet/toggle.
func (h *DraftHandler) ToggleFleet(c *gin.Context) {
	var item model.FleetItem
	if err := c.ShouldBindJSON(&item); err != nil || item.DrivingPlate == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c, func(ctx context.Context, owner, id string) (usecase.Draft, error) {
		return h.facade.ToggleFleet(ctx, owner, id, item)
	})
}

// SetFleetPrice handles PUT /api/drafts/:draftID/fleet/price. A rejected input is
// not an error: the draft keeps its previous price and accepted is false.
func (h *DraftHandler) SetFleetPrice(c *gin.Context) {
	var req dto.FleetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	edit, err := h.facade.SetFleetPrice(c.Request.Context(), CurrentSession(c).Username, c.Param("draftID"), req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PriceEditResponse{Accepted: edit.Accepted, Draft: toDraftResponse(edit.Draft)})
}

// Next handles POST /api/drafts/:draftID/next.
func (h *DraftHandler) Next(c *gin.Context) {
	h.respond(c, h.facade.NextStep)
}

// Back handles POST /api/drafts/:draftID/back.
func (h *DraftHandler) Back(c *gin.Context) {
	h.respond(c, h.facade.PreviousStep)
}

// Validate handles POST /api/drafts/:draftID/validate.
func (h *DraftHandler) Validate(c *gin.Context) {
	result, err := h.facade.ValidateDraft(c.Request.Context(), CurrentSession(c).Username, c.Param("draftID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Submit handles POST /api/drafts/:draftID/submit.
func (h *DraftHandler) Submit(c *gin.Context) {
	outcome, err := h.facade.SubmitDraft(c.Request.Context(), CurrentSession(c), c.Param("draftID"))
	if err != nil {
		writeSubmissionError(c, err, outcome.Notice)
		return
	}

	resp := dto.SubmitResponse{Redirect: outcome.Redirect, Notice: outcome.Notice}
	if outcome.Receipt != nil {
		resp.OrderID = outcome.Receipt.ID
	}
	c.JSON(http.StatusOK, resp)
}

// Discard handles DELETE /api/drafts/:draftID.
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.facade.DiscardDraft(c.Request.Context(), CurrentSession(c).Username, c.Param("draftID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DraftHandler) respond(c *gin.Context, op func(ctx context.Context, owner, id string) (usecase.Draft, error)) {
	d, err := op(c.Request.Context(), CurrentSession(c).Username, c.Param("draftID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftResponse(d))
}
