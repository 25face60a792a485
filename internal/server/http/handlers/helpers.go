package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/listview"
	"github.com/bestchance/orderdesk/internal/server/http/dto"
	"github.com/bestchance/orderdesk/internal/server/http/middleware"
	"github.com/bestchance/orderdesk/internal/usecase"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// CurrentSession extracts the authenticated session from context.
func CurrentSession(c *gin.Context) model.Session {
	val, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return model.Session{}
	}
	session, _ := val.(model.Session)
	return session
}

func listQuery(c *gin.Context) usecase.ListQuery {
	return usecase.ListQuery{
		Search: c.Query("q"),
		Sort:   listview.ParseSort(c.Query("sort"), c.Query("dir")),
	}
}

func expenseFilter(c *gin.Context) usecase.ExpenseFilter {
	return usecase.ExpenseFilter{
		Type:   c.Query("type"),
		Search: c.Query("q"),
		Sort:   listview.ParseSort(c.Query("sort"), c.Query("dir")),
	}
}

// writeError maps use case errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var (
		conflict   *wizard.SupplierConflictError
		validation *wizard.ValidationError
		submission *wizard.SubmissionError
		limited    backend.TooManyRequestsError
		upstream   *backend.StatusError
	)

	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, dto.ConflictResponse{
			Message:           wizard.SupplierConflictMessage,
			CurrentSupplier:   conflict.Current,
			AttemptedSupplier: conflict.Attempted,
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "validation failed", FieldErrors: validation.Fields})
	case errors.As(err, &submission):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: submission.Message})
	case errors.Is(err, domainErrors.ErrDraftNotFound), errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidFlow), errors.Is(err, backend.ErrInvalidProjectID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrStepIncomplete),
		errors.Is(err, wizard.ErrNoNextStep),
		errors.Is(err, wizard.ErrNoPreviousStep),
		errors.Is(err, wizard.ErrInvalidStep),
		errors.Is(err, wizard.ErrNoFleetStep):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, domainErrors.ErrUnauthorized):
		c.Status(http.StatusUnauthorized)
	case errors.As(err, &limited):
		c.Header("Retry-After", strconv.Itoa(int(limited.RetryAfter.Seconds())))
		c.Status(http.StatusTooManyRequests)
	case errors.As(err, &upstream):
		c.Status(http.StatusBadGateway)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// writeSubmissionError answers a failed submission with its notice, or falls back to writeError.
func writeSubmissionError(c *gin.Context, err error, notice usecase.Notice) {
	var submission *wizard.SubmissionError
	if errors.As(err, &submission) {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: submission.Message, Notice: &notice})
		return
	}
	writeError(c, err)
}

func toDraftResponse(d usecase.Draft) dto.DraftResponse {
	draft := d.Draft
	resp := dto.DraftResponse{
		ID:               d.ID,
		ProjectID:        draft.ProjectID,
		Flow:             draft.Flow,
		Step:             draft.Step,
		Steps:            wizard.Steps(draft.Flow),
		Materials:        draft.Materials.Entries(),
		StartingLocation: draft.StartingLocation,
		DeliveryDate:     draft.DeliveryDate,
		State:            draft.Snapshot(),
	}
	if supplier, ok := draft.Materials.Supplier(); ok {
		resp.Supplier = supplier
	}
	if fleet, ok := draft.Fleet.Selected(); ok {
		resp.Fleet = &fleet
		resp.FleetPrice = fleet.EffectivePrice()
	}
	return resp
}

func toSubmissionHistory(projectID string, h usecase.History) dto.SubmissionHistoryResponse {
	resp := dto.SubmissionHistoryResponse{
		ProjectID: projectID,
		Attempts:  h.Summary.Attempts,
		Successes: h.Summary.Successes,
		Items:     make([]dto.SubmissionResponse, 0, len(h.Items)),
	}
	if !h.Summary.LastSubmittedAt.IsZero() {
		last := h.Summary.LastSubmittedAt
		resp.LastSubmittedAt = &last
	}
	for _, s := range h.Items {
		item := dto.SubmissionResponse{
			ID:          s.ID,
			Flow:        s.Flow,
			Username:    s.Username,
			Succeeded:   s.Succeeded,
			Response:    s.Response,
			SubmittedAt: s.SubmittedAt,
		}
		if len(s.Payload) > 0 && json.Valid(s.Payload) {
			item.Payload = json.RawMessage(s.Payload)
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
