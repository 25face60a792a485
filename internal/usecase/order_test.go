package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/storage/memory"
	testhelpers "github.com/bestchance/orderdesk/internal/test"
	"github.com/bestchance/orderdesk/internal/wizard"
)

type observerStub struct {
	outcomes []bool
	flows    []string
}

func (o *observerStub) ObserveSubmission(flow string, ok bool) {
	o.flows = append(o.flows, flow)
	o.outcomes = append(o.outcomes, ok)
}

type orderFixture struct {
	uc       *OrderUseCase
	drafts   *memory.DraftStore
	ledger   *testhelpers.SubmissionRepositoryStub
	client   *testhelpers.BackendStub
	observer *observerStub
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	f := orderFixture{
		drafts:   memory.NewDraftStore(nil),
		ledger:   &testhelpers.SubmissionRepositoryStub{},
		client:   &testhelpers.BackendStub{},
		observer: &observerStub{},
	}
	f.uc = NewOrderUseCase(f.drafts, f.ledger, f.client, discardLogger(), OrderOptions{
		Location:       hkt,
		Now:            clock,
		NoticeDuration: 3 * time.Second,
		HistoryLimit:   10,
		Observer:       f.observer,
	})
	return f
}

func strPtr(s string) *string { return &s }

func (f orderFixture) start(t *testing.T, flow model.Flow) string {
	t.Helper()
	d, err := f.uc.Start(context.Background(), "alice", StartRequest{ProjectID: "P1", Flow: flow})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return d.ID
}

func TestOrderStartValidatesInput(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Start(ctx, "alice", StartRequest{ProjectID: "P1", Flow: "fleet"}); !errors.Is(err, domainErrors.ErrInvalidFlow) {
		t.Fatalf("expected invalid flow, got %v", err)
	}
	if f.drafts.Len() != 0 {
		t.Fatal("failed start must not store a draft")
	}

	d, err := f.uc.Start(ctx, "alice", StartRequest{ProjectID: "P1", Flow: model.FlowCombined})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == "" || d.Draft.Step != wizard.StepMaterials || f.uc.ActiveDrafts() != 1 {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestOrderStartRestoresState(t *testing.T) {
	f := newOrderFixture(t)
	state := wizard.NavigationState{
		Step:              wizard.StepConfirm,
		SelectedMaterials: []wizard.SelectedMaterial{{MaterialItem: cement, Quantity: 4}},
		SelectedFleet:     &wizard.SelectedFleet{FleetItem: truckA, EditedPrice: "750"},
		StartingLocation:  "Yard",
		DeliveryDate:      "2026-10-20",
	}

	d, err := f.uc.Start(context.Background(), "alice", StartRequest{ProjectID: "P1", Flow: model.FlowCombined, State: &state})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Draft.Step != wizard.StepConfirm || d.Draft.Materials.Quantity(cement) != 4 {
		t.Fatalf("unexpected restored draft: %+v", d.Draft)
	}
	stored, _ := f.uc.Get(context.Background(), "alice", d.ID)
	if stored.Draft.Snapshot().SelectedFleet.EditedPrice != "750" {
		t.Fatalf("expected restored fleet price, got %+v", stored.Draft.Snapshot())
	}

	bad := wizard.NavigationState{SelectedMaterials: []wizard.SelectedMaterial{{MaterialItem: cement, Quantity: 1}, {MaterialItem: rebar, Quantity: 1}}}
	var conflictErr *wizard.SupplierConflictError
	if _, err := f.uc.Start(context.Background(), "alice", StartRequest{ProjectID: "P1", Flow: model.FlowCombined, State: &bad}); !errors.As(err, &conflictErr) {
		t.Fatalf("expected supplier conflict, got %v", err)
	}
}

func TestOrderToggleMaterialSupplierConflict(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	id := f.start(t, model.FlowCombined)

	if _, err := f.uc.ToggleMaterial(ctx, "alice", id, cement); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	_, err := f.uc.ToggleMaterial(ctx, "alice", id, rebar)
	var conflictErr *wizard.SupplierConflictError
	if !errors.As(err, &conflictErr) || conflictErr.Current != "Acme" || conflictErr.Attempted != "Steelco" {
		t.Fatalf("expected conflict Acme/Steelco, got %v", err)
	}

	d, _ := f.uc.Get(ctx, "alice", id)
	if d.Draft.Materials.Len() != 1 || d.Draft.Materials.Contains(rebar) {
		t.Fatalf("selection must be unchanged after a conflict: %+v", d.Draft.Materials.Entries())
	}

	if _, err := f.uc.SetMaterialQuantity(ctx, "alice", id, rebar, "3"); !errors.As(err, &conflictErr) {
		t.Fatalf("quantity insert must honour the supplier lock, got %v", err)
	}

	// emptying the selection releases the lock
	if _, err := f.uc.ToggleMaterial(ctx, "alice", id, cement); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	d, err = f.uc.SetMaterialQuantity(ctx, "alice", id, rebar, "3")
	if err != nil || d.Draft.Materials.Quantity(rebar) != 3 {
		t.Fatalf("expected rebar x3, got %+v err=%v", d.Draft.Materials.Entries(), err)
	}
}

func TestOrderFleetAndPrice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	id := f.start(t, model.FlowCombined)

	if _, err := f.uc.ToggleFleet(ctx, "alice", id, truckA); err != nil {
		t.Fatalf("toggle fleet: %v", err)
	}
	edit, err := f.uc.SetFleetPrice(ctx, "alice", id, "720.5")
	if err != nil || !edit.Accepted {
		t.Fatalf("expected accepted price, got %+v err=%v", edit, err)
	}
	edit, _ = f.uc.SetFleetPrice(ctx, "alice", id, "12a")
	if edit.Accepted {
		t.Fatal("expected rejected price")
	}
	fleet, _ := edit.Draft.Draft.Fleet.Selected()
	if fleet.Price != "720.5" {
		t.Fatalf("rejected edit must keep previous price, got %q", fleet.Price)
	}

	matID := f.start(t, model.FlowMaterial)
	if _, err := f.uc.ToggleFleet(ctx, "alice", matID, truckA); !errors.Is(err, wizard.ErrNoFleetStep) {
		t.Fatalf("expected no fleet step, got %v", err)
	}
}

func TestOrderNavigationGates(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	id := f.start(t, model.FlowCombined)

	if _, err := f.uc.Next(ctx, "alice", id); !errors.Is(err, domainErrors.ErrStepIncomplete) {
		t.Fatalf("expected step incomplete without materials, got %v", err)
	}
	_, _ = f.uc.ToggleMaterial(ctx, "alice", id, cement)
	d, err := f.uc.Next(ctx, "alice", id)
	if err != nil || d.Draft.Step != wizard.StepFleet {
		t.Fatalf("expected fleet step, got %+v err=%v", d.Draft, err)
	}
	if _, err := f.uc.Next(ctx, "alice", id); !errors.Is(err, domainErrors.ErrStepIncomplete) {
		t.Fatalf("expected step incomplete without fleet, got %v", err)
	}
	_, _ = f.uc.ToggleFleet(ctx, "alice", id, truckA)
	d, _ = f.uc.Next(ctx, "alice", id)
	if d.Draft.Step != wizard.StepConfirm {
		t.Fatalf("expected confirm step, got %s", d.Draft.Step)
	}
	if _, err := f.uc.Next(ctx, "alice", id); !errors.Is(err, wizard.ErrNoNextStep) {
		t.Fatalf("expected no next step, got %v", err)
	}

	d, err = f.uc.Back(ctx, "alice", id)
	if err != nil || d.Draft.Step != wizard.StepFleet || !d.Draft.Materials.Contains(cement) {
		t.Fatalf("going back must keep the selection, got %+v err=%v", d.Draft, err)
	}
}

func TestOrderOwnership(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	id := f.start(t, model.FlowCombined)

	if _, err := f.uc.Get(ctx, "bob", id); !errors.Is(err, domainErrors.ErrDraftNotFound) {
		t.Fatalf("expected not found for another operator, got %v", err)
	}
	if _, err := f.uc.ToggleMaterial(ctx, "bob", id, cement); !errors.Is(err, domainErrors.ErrDraftNotFound) {
		t.Fatalf("expected not found for another operator, got %v", err)
	}
	if err := f.uc.Discard(ctx, "alice", id); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := f.uc.Get(ctx, "alice", id); !errors.Is(err, domainErrors.ErrDraftNotFound) {
		t.Fatalf("expected discarded draft to be gone, got %v", err)
	}
}

func TestOrderValidate(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	id := f.start(t, model.FlowCombined)

	res, err := f.uc.Validate(ctx, "alice", id)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.Valid || res.FieldErrors[wizard.FieldStartingLocation] != wizard.MsgStartingLocationRequired ||
		res.FieldErrors[wizard.FieldDeliveryDate] != wizard.MsgDeliveryDateRequired {
		t.Fatalf("unexpected result: %+v", res)
	}

	_, _ = f.uc.Update(ctx, "alice", id, wizard.DraftPatch{StartingLocation: strPtr("Yard"), DeliveryDate: strPtr("2026-10-15")})
	res, _ = f.uc.Validate(ctx, "alice", id)
	if res.FieldErrors[wizard.FieldDeliveryDate] != wizard.MsgDeliveryDateInPast || len(res.FieldErrors) != 1 {
		t.Fatalf("expected past date only, got %+v", res)
	}

	_, _ = f.uc.Update(ctx, "alice", id, wizard.DraftPatch{DeliveryDate: strPtr("2026-10-16")})
	res, _ = f.uc.Validate(ctx, "alice", id)
	if !res.Valid {
		t.Fatalf("expected today to be valid, got %+v", res)
	}
	d, _ := f.uc.Get(ctx, "alice", id)
	if d.Draft.StartingLocation != "Yard" {
		t.Fatalf("patch without location must keep it, got %q", d.Draft.StartingLocation)
	}
}

func prepareCombined(t *testing.T, f orderFixture) string {
	t.Helper()
	ctx := context.Background()
	id := f.start(t, model.FlowCombined)
	_, _ = f.uc.ToggleMaterial(ctx, "alice", id, cement)
	_, _ = f.uc.SetMaterialQuantity(ctx, "alice", id, cement, "10")
	_, _ = f.uc.ToggleMaterial(ctx, "alice", id, sand)
	_, _ = f.uc.ToggleFleet(ctx, "alice", id, truckA)
	_, _ = f.uc.SetFleetPrice(ctx, "alice", id, "750")
	_, err := f.uc.Update(ctx, "alice", id, wizard.DraftPatch{StartingLocation: strPtr("Yard"), DeliveryDate: strPtr("2026-10-20")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	return id
}

func TestOrderSubmitSuccess(t *testing.T) {
	f := newOrderFixture(t)
	id := prepareCombined(t, f)

	out, err := f.uc.Submit(context.Background(), alice, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Receipt == nil || out.Receipt.ID != "order-1" {
		t.Fatalf("unexpected receipt: %+v", out.Receipt)
	}
	if out.Redirect != "/order/P1" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	if out.Notice.Kind != NoticeSuccess || out.Notice.Message != OrderPlacedMessage || !out.Notice.ExpiresAt.Equal(fixedNow.Add(3*time.Second)) {
		t.Fatalf("unexpected notice: %+v", out.Notice)
	}

	if len(f.client.Submitted) != 1 {
		t.Fatalf("expected one backend submission, got %d", len(f.client.Submitted))
	}
	body, _ := json.Marshal(f.client.Submitted[0].Body())
	want := `{"starting_location":"Yard","driver_name":"Chan","supplier_name":"Acme","materials":[{"material_name":"Cement","material_qty":"10"},{"material_name":"Sand","material_qty":"1"}],"delivery_date":"2026-10-20","fleet_price":"750"}`
	if string(body) != want {
		t.Fatalf("unexpected body:\n%s\nwant:\n%s", body, want)
	}
	if f.client.Sessions[0].Token != alice.Token {
		t.Fatal("expected the caller's token to be used")
	}

	if _, err := f.uc.Get(context.Background(), "alice", id); !errors.Is(err, domainErrors.ErrDraftNotFound) {
		t.Fatalf("submitted draft must be consumed, got %v", err)
	}
	if len(f.ledger.Records) != 1 || !f.ledger.Records[0].Succeeded || string(f.ledger.Records[0].Payload) != want {
		t.Fatalf("unexpected ledger: %+v", f.ledger.Records)
	}
	if len(f.observer.outcomes) != 1 || !f.observer.outcomes[0] || f.observer.flows[0] != "combined" {
		t.Fatalf("unexpected observations: %+v", f.observer)
	}
}

func TestOrderSubmitMaterialFlowRedirect(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	id := f.start(t, model.FlowMaterial)
	_, _ = f.uc.ToggleMaterial(ctx, "alice", id, rebar)
	_, _ = f.uc.Update(ctx, "alice", id, wizard.DraftPatch{DeliveryDate: strPtr("2026-10-16")})

	out, err := f.uc.Submit(ctx, alice, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Redirect != "/material/P1" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	if f.client.Submitted[0].Flow != model.FlowMaterial || f.client.Submitted[0].Material == nil {
		t.Fatalf("expected material request, got %+v", f.client.Submitted[0])
	}
}

func TestOrderSubmitFailureKeepsDraft(t *testing.T) {
	f := newOrderFixture(t)
	id := prepareCombined(t, f)
	cause := errors.New("backend 500")
	f.client.SubmitFn = func(context.Context, model.Session, model.OrderRequest) (*model.OrderReceipt, error) {
		return nil, cause
	}

	out, err := f.uc.Submit(context.Background(), alice, id)
	var subErr *wizard.SubmissionError
	if !errors.As(err, &subErr) || subErr.Message != wizard.SubmissionFailedMessage || !errors.Is(err, cause) {
		t.Fatalf("expected submission error wrapping cause, got %v", err)
	}
	if out.Notice.Kind != NoticeError || out.Notice.Message != wizard.SubmissionFailedMessage || out.Redirect != "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if _, err := f.uc.Get(context.Background(), "alice", id); err != nil {
		t.Fatalf("draft must be kept for retry, got %v", err)
	}
	if len(f.ledger.Records) != 1 || f.ledger.Records[0].Succeeded || f.ledger.Records[0].Response != "backend 500" {
		t.Fatalf("unexpected ledger: %+v", f.ledger.Records)
	}
	if f.observer.outcomes[0] {
		t.Fatal("expected failed observation")
	}

	// retry succeeds with the kept draft
	f.client.SubmitFn = nil
	if _, err := f.uc.Submit(context.Background(), alice, id); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestOrderSubmitReceiptCarriesOrderID(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fromLedger bool
		want       string
	}{
		{name: "backend id", body: `{"id":"ORD-42","message":"ok"}`, want: "ORD-42"},
		{name: "no backend id", body: `{"message":"ok"}`, fromLedger: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/order-material/P1" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			client, err := backend.NewHTTPClient(srv.URL, time.Second, backend.Credentials{}, nil, discardLogger())
			if err != nil {
				t.Fatalf("client: %v", err)
			}
			ledger := &testhelpers.SubmissionRepositoryStub{}
			uc := NewOrderUseCase(memory.NewDraftStore(nil), ledger, client, discardLogger(), OrderOptions{Location: hkt, Now: clock})

			ctx := context.Background()
			d, err := uc.Start(ctx, "alice", StartRequest{ProjectID: "P1", Flow: model.FlowMaterial})
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			_, _ = uc.ToggleMaterial(ctx, "alice", d.ID, rebar)
			_, _ = uc.Update(ctx, "alice", d.ID, wizard.DraftPatch{DeliveryDate: strPtr("2026-10-16")})

			out, err := uc.Submit(ctx, alice, d.ID)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			want := tt.want
			if tt.fromLedger {
				if len(ledger.Records) != 1 {
					t.Fatalf("expected one ledger row, got %d", len(ledger.Records))
				}
				want = ledger.Records[0].ID
			}
			if out.Receipt == nil || out.Receipt.ID == "" || out.Receipt.ID != want {
				t.Fatalf("expected order id %q, got %+v", want, out.Receipt)
			}
			if out.Receipt.Response != tt.body {
				t.Fatalf("unexpected response %q", out.Receipt.Response)
			}
		})
	}
}

func TestOrderSubmitConcurrentCallsPlaceOneOrder(t *testing.T) {
	f := newOrderFixture(t)
	id := prepareCombined(t, f)
	var posts atomic.Int32
	f.client.SubmitFn = func(context.Context, model.Session, model.OrderRequest) (*model.OrderReceipt, error) {
		posts.Add(1)
		time.Sleep(50 * time.Millisecond)
		return &model.OrderReceipt{ID: "order-1"}, nil
	}

	const callers = 4
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		missing   atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Submit(context.Background(), alice, id)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domainErrors.ErrDraftNotFound):
				missing.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if posts.Load() != 1 || successes.Load() != 1 || missing.Load() != callers-1 {
		t.Fatalf("expected one order, got posts=%d successes=%d missing=%d", posts.Load(), successes.Load(), missing.Load())
	}
}

func TestOrderConcurrentEditsAreNotLost(t *testing.T) {
	f := newOrderFixture(t)
	id := f.start(t, model.FlowMaterial)

	const edits = 20
	var wg sync.WaitGroup
	for i := 0; i < edits; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item := model.MaterialItem{MaterialName: fmt.Sprintf("Item %d", i), SupplierName: "Acme", Unit: "pc", UnitPrice: "1"}
			if _, err := f.uc.ToggleMaterial(context.Background(), "alice", id, item); err != nil {
				t.Errorf("toggle %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	d, err := f.uc.Get(context.Background(), "alice", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.Draft.Materials.Len() != edits {
		t.Fatalf("expected %d selected materials, got %d", edits, d.Draft.Materials.Len())
	}
}

func TestOrderSubmitRejectsInvalidDraft(t *testing.T) {
	f := newOrderFixture(t)
	id := f.start(t, model.FlowCombined)

	_, err := f.uc.Submit(context.Background(), alice, id)
	var verr *wizard.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.client.Submitted) != 0 || len(f.ledger.Records) != 0 {
		t.Fatal("invalid draft must not be submitted or recorded")
	}
}

func TestOrderSubmitLedgerFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.ledger.RecordErr = errors.New("db down")
	id := prepareCombined(t, f)

	if _, err := f.uc.Submit(context.Background(), alice, id); err != nil {
		t.Fatalf("ledger failure must not fail the order: %v", err)
	}
}

func TestOrderHistory(t *testing.T) {
	f := newOrderFixture(t)
	id := prepareCombined(t, f)
	_, _ = f.uc.Submit(context.Background(), alice, id)

	h, err := f.uc.History(context.Background(), "P1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(h.Items) != 1 || h.Summary.Attempts != 1 || h.Summary.Successes != 1 {
		t.Fatalf("unexpected history: %+v", h)
	}

	f.ledger.ListErr = errors.New("boom")
	if _, err := f.uc.History(context.Background(), "P1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEntryPath(t *testing.T) {
	if EntryPath(model.FlowCombined, "7") != "/order/7" || EntryPath(model.FlowMaterial, "7") != "/material/7" {
		t.Fatal("unexpected entry paths")
	}
}

func TestOrderEvictIdle(t *testing.T) {
	f := newOrderFixture(t)
	f.start(t, model.FlowCombined)
	f.start(t, model.FlowMaterial)
	if f.uc.ActiveDrafts() != 2 {
		t.Fatalf("expected two drafts, got %d", f.uc.ActiveDrafts())
	}

	if n := f.uc.EvictIdle(context.Background(), time.Now().Add(-time.Hour)); n != 0 {
		t.Fatalf("expected fresh drafts to survive, evicted %d", n)
	}
	if n := f.uc.EvictIdle(context.Background(), time.Now().Add(time.Minute)); n != 2 {
		t.Fatalf("expected both drafts evicted, got %d", n)
	}
	if f.uc.ActiveDrafts() != 0 {
		t.Fatalf("expected no drafts left, got %d", f.uc.ActiveDrafts())
	}
}
