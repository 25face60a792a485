package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/domain/repository"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// SubmissionObserver receives the outcome of every submission attempt.
type SubmissionObserver interface {
	ObserveSubmission(flow string, ok bool)
}

type nopSubmissionObserver struct{}

func (nopSubmissionObserver) ObserveSubmission(string, bool) {}

// Draft is a stored draft together with its identifier.
type Draft struct {
	ID    string
	Draft *wizard.OrderDraft
}

// StartRequest opens a wizard for a project, optionally from carried navigation state.
type StartRequest struct {
	ProjectID string
	Flow      model.Flow
	State     *wizard.NavigationState
}

// PriceEdit reports whether a fleet price edit was accepted.
type PriceEdit struct {
	Draft
	Accepted bool
}

// SubmitOutcome is what the confirmation screen shows after a submission attempt.
type SubmitOutcome struct {
	Receipt  *model.OrderReceipt
	Notice   Notice
	Redirect string
}

// History is a project's submission ledger view.
type History struct {
	Summary model.SubmissionSummary
	Items   []model.Submission
}

// OrderOptions tunes OrderUseCase. Zero values fall back to defaults.
type OrderOptions struct {
	Location       *time.Location
	Now            func() time.Time
	NoticeDuration time.Duration
	HistoryLimit   int
	Observer       SubmissionObserver
}

// OrderUseCase drives the order wizard: draft lifecycle, selection edits, step
// navigation, validation and submission.
type OrderUseCase struct {
	drafts       repository.DraftRepository
	submissions  repository.SubmissionRepository
	client       backend.Client
	validator    *wizard.Validator
	observer     SubmissionObserver
	logger       *slog.Logger
	notices      noticeClock
	historyLimit int
	locks        *draftLocks
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	drafts repository.DraftRepository,
	submissions repository.SubmissionRepository,
	client backend.Client,
	logger *slog.Logger,
	opts OrderOptions,
) *OrderUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if opts.Observer == nil {
		opts.Observer = nopSubmissionObserver{}
	}
	return &OrderUseCase{
		drafts:       drafts,
		submissions:  submissions,
		client:       client,
		validator:    wizard.NewValidator(opts.Location, opts.Now),
		observer:     opts.Observer,
		logger:       logger,
		notices:      noticeClock{now: opts.Now, duration: opts.NoticeDuration},
		historyLimit: opts.HistoryLimit,
		locks:        newDraftLocks(),
	}
}

// Start creates a draft owned by owner. With State it resumes a previous screen.
func (u *OrderUseCase) Start(ctx context.Context, owner string, req StartRequest) (Draft, error) {
	var (
		d   *wizard.OrderDraft
		err error
	)
	if req.State != nil {
		d, err = wizard.Restore(req.ProjectID, req.Flow, *req.State)
	} else {
		d, err = wizard.NewDraft(req.ProjectID, req.Flow)
	}
	if err != nil {
		return Draft{}, err
	}

	id, err := u.drafts.Create(ctx, owner, d)
	if err != nil {
		return Draft{}, fmt.Errorf("create draft: %w", err)
	}
	return Draft{ID: id, Draft: d}, nil
}

func (u *OrderUseCase) Get(ctx context.Context, owner, id string) (Draft, error) {
	d, err := u.drafts.Get(ctx, owner, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{ID: id, Draft: d}, nil
}

// Discard drops a draft, as when the operator leaves the wizard.
func (u *OrderUseCase) Discard(ctx context.Context, owner, id string) error {
	release, err := u.locks.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()
	return u.drafts.Delete(ctx, owner, id)
}

// ToggleMaterial flips a material. A second supplier is refused with *wizard.SupplierConflictError.
func (u *OrderUseCase) ToggleMaterial(ctx context.Context, owner, id string, item model.MaterialItem) (Draft, error) {
	return u.mutate(ctx, owner, id, func(d *wizard.OrderDraft) error {
		return conflict(d.ToggleMaterial(item), item)
	})
}

// SetMaterialQuantity applies a raw quantity input.
func (u *OrderUseCase) SetMaterialQuantity(ctx context.Context, owner, id string, item model.MaterialItem, value string) (Draft, error) {
	return u.mutate(ctx, owner, id, func(d *wizard.OrderDraft) error {
		return conflict(d.SetMaterialQuantity(item, value), item)
	})
}

func (u *OrderUseCase) ToggleFleet(ctx context.Context, owner, id string, item model.FleetItem) (Draft, error) {
	return u.mutate(ctx, owner, id, func(d *wizard.OrderDraft) error {
		_, err := d.ToggleFleet(item)
		return err
	})
}

// SetFleetPrice edits the selected fleet's price. Rejected input leaves the draft as it was.
func (u *OrderUseCase) SetFleetPrice(ctx context.Context, owner, id, value string) (PriceEdit, error) {
	var accepted bool
	draft, err := u.mutate(ctx, owner, id, func(d *wizard.OrderDraft) error {
		accepted = d.SetFleetPrice(value)
		return nil
	})
	if err != nil {
		return PriceEdit{}, err
	}
	return PriceEdit{Draft: draft, Accepted: accepted}, nil
}

// Update merges confirmation fields into the draft.
func (u *OrderUseCase) Update(ctx context.Context, owner, id string, patch wizard.DraftPatch) (Draft, error) {
	return u.mutate(ctx, owner, id, func(d *wizard.OrderDraft) error {
		d.Merge(patch)
		return nil
	})
}

func (u *OrderUseCase) Next(ctx context.Context, owner, id string) (Draft, error) {
	return u.mutate(ctx, owner, id, (*wizard.OrderDraft).Advance)
}

func (u *OrderUseCase) Back(ctx context.Context, owner, id string) (Draft, error) {
	return u.mutate(ctx, owner, id, (*wizard.OrderDraft).Retreat)
}

// Validate runs the confirmation checks without submitting.
func (u *OrderUseCase) Validate(ctx context.Context, owner, id string) (wizard.ValidationResult, error) {
	d, err := u.drafts.Get(ctx, owner, id)
	if err != nil {
		return wizard.ValidationResult{}, err
	}
	return u.validator.Validate(d, d.Flow), nil
}

// Submit validates the draft and places the order. On success the draft is consumed
// and the outcome carries a success notice plus the flow's entry screen. On failure
// the draft is kept for a retry and the outcome carries the error notice alongside a
// *wizard.SubmissionError. Every attempt is written to the submission ledger.
// Concurrent calls on one draft are serialized, so a consumed draft is never posted twice.
func (u *OrderUseCase) Submit(ctx context.Context, session model.Session, id string) (SubmitOutcome, error) {
	release, err := u.locks.acquire(ctx, id)
	if err != nil {
		return SubmitOutcome{}, err
	}
	defer release()

	d, err := u.drafts.Get(ctx, session.Username, id)
	if err != nil {
		return SubmitOutcome{}, err
	}
	if err := u.validator.Validate(d, d.Flow).Err(); err != nil {
		return SubmitOutcome{}, err
	}

	req := wizard.BuildRequest(d)
	payload, err := json.Marshal(req.Body())
	if err != nil {
		return SubmitOutcome{}, fmt.Errorf("encode order: %w", err)
	}

	receipt, submitErr := u.client.SubmitOrder(ctx, session, req)
	entry := model.Submission{
		ID:          uuid.NewString(),
		ProjectID:   d.ProjectID,
		Flow:        d.Flow,
		Username:    session.Username,
		Payload:     payload,
		Succeeded:   submitErr == nil,
		SubmittedAt: u.notices.now(),
	}
	u.observer.ObserveSubmission(string(d.Flow), submitErr == nil)

	if submitErr != nil {
		entry.Response = submitErr.Error()
		u.record(ctx, entry)
		u.logger.Error("order submission failed",
			slog.String("draft_id", id),
			slog.String("project_id", d.ProjectID),
			slog.String("flow", string(d.Flow)),
			slog.Any("error", submitErr),
		)
		return SubmitOutcome{Notice: u.notices.notice(NoticeError, wizard.SubmissionFailedMessage)}, wizard.NewSubmissionError(submitErr)
	}

	if receipt == nil {
		receipt = &model.OrderReceipt{}
	}
	if receipt.ID == "" {
		receipt.ID = entry.ID
	}
	entry.Response = receipt.Response
	u.record(ctx, entry)
	if err := u.drafts.Delete(ctx, session.Username, id); err != nil {
		u.logger.Warn("submitted draft not deleted", slog.String("draft_id", id), slog.Any("error", err))
	}
	u.logger.Info("order submitted",
		slog.String("project_id", d.ProjectID),
		slog.String("flow", string(d.Flow)),
		slog.String("submission_id", entry.ID),
		slog.String("order_id", receipt.ID),
	)

	return SubmitOutcome{
		Receipt:  receipt,
		Notice:   u.notices.notice(NoticeSuccess, OrderPlacedMessage),
		Redirect: EntryPath(d.Flow, d.ProjectID),
	}, nil
}

// History lists the latest submission attempts of a project.
func (u *OrderUseCase) History(ctx context.Context, projectID string) (History, error) {
	projectID = strings.TrimSpace(projectID)
	items, err := u.submissions.ListByProject(ctx, projectID, u.historyLimit)
	if err != nil {
		return History{}, fmt.Errorf("list submissions: %w", err)
	}
	summary, err := u.submissions.Summary(ctx, projectID)
	if err != nil {
		return History{}, fmt.Errorf("submission summary: %w", err)
	}
	return History{Summary: summary, Items: items}, nil
}

// EvictIdle drops drafts untouched since olderThan.
func (u *OrderUseCase) EvictIdle(ctx context.Context, olderThan time.Time) int {
	return u.drafts.EvictIdle(ctx, olderThan)
}

// ActiveDrafts reports how many drafts are currently held.
func (u *OrderUseCase) ActiveDrafts() int {
	return u.drafts.Len()
}

// EntryPath is the screen a flow returns to after a successful order.
func EntryPath(flow model.Flow, projectID string) string {
	if flow == model.FlowMaterial {
		return "/material/" + projectID
	}
	return "/order/" + projectID
}

func (u *OrderUseCase) mutate(ctx context.Context, owner, id string, fn func(*wizard.OrderDraft) error) (Draft, error) {
	release, err := u.locks.acquire(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	defer release()

	d, err := u.drafts.Get(ctx, owner, id)
	if err != nil {
		return Draft{}, err
	}
	if err := fn(d); err != nil {
		return Draft{}, err
	}
	if err := u.drafts.Save(ctx, owner, id, d); err != nil {
		return Draft{}, err
	}
	return Draft{ID: id, Draft: d}, nil
}

func (u *OrderUseCase) record(ctx context.Context, entry model.Submission) {
	if err := u.submissions.Record(ctx, entry); err != nil {
		u.logger.Warn("submission ledger write failed", slog.String("submission_id", entry.ID), slog.Any("error", err))
	}
}

func conflict(dec wizard.Decision, item model.MaterialItem) error {
	if dec.Allowed {
		return nil
	}
	return &wizard.SupplierConflictError{Current: dec.ConflictingSupplier, Attempted: item.SupplierName}
}
