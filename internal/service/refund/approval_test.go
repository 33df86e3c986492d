package refund

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db/repository"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/governance"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/testutil"
)

type fixture struct {
	dal       *db.TenantDB
	svc       *ApprovalService
	audit     domain.AuditRepository
	reception *domain.User
	manager   *domain.User
	owner     *domain.User
	booking   *domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dal, write, _ := testutil.NewDAL(t)
	testutil.InsertTenant(t, write, "t1", "Hotel One")

	reception := testutil.InsertUser(t, dal, "t1", "reception@t1", domain.RoleReception, "pass-123456")
	manager := testutil.InsertUser(t, dal, "t1", "manager@t1", domain.RoleManager, "pass-123456")
	owner := testutil.InsertUser(t, dal, "t1", "owner@t1", domain.RoleOwner, "pass-123456")

	auditRepo := repository.NewAuditRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewApprovalService(dal,
		repository.NewBookingRepo(), repository.NewRefundRepo(), repository.NewCreditNoteRepo(),
		governance.NewAuditService(dal, auditRepo), logger)

	booking := testutil.InsertBooking(t, testutil.Ctx(reception), dal, 300000)
	return &fixture{dal: dal, svc: svc, audit: auditRepo, reception: reception, manager: manager, owner: owner, booking: booking}
}

func (f *fixture) request(t *testing.T, amount int64) *domain.RefundRequest {
	t.Helper()
	r, err := f.svc.Request(testutil.Ctx(f.reception), domain.CreateRefundRequest{
		BookingID:  f.booking.ID,
		Amount:     amount,
		ReasonCode: "GUEST_COMPLAINT",
		ReasonText: "room not as advertised",
	})
	require.NoError(t, err)
	return r
}

func TestRequestCapturesMaxRefundable(t *testing.T) {
	f := newFixture(t)

	r := f.request(t, 250000)
	assert.Equal(t, domain.RefundPending, r.Status)
	assert.EqualValues(t, 300000, r.MaxRefundable)
	assert.Equal(t, f.reception.ID, r.RequesterID)
}

func TestRequestRejectsOverRefundable(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Request(testutil.Ctx(f.reception), domain.CreateRefundRequest{
		BookingID: f.booking.ID, Amount: 300001, ReasonCode: "X",
	})
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, domain.CodeInsufficientRefundableAmount, validation.Code)
}

func TestApproveIssuesCreditNote(t *testing.T) {
	f := newFixture(t)
	r := f.request(t, 250000)

	note, err := f.svc.Approve(testutil.Ctx(f.manager), r.ID, domain.RefundModeCreditNote)
	require.NoError(t, err)
	assert.EqualValues(t, 1, note.Number)
	assert.EqualValues(t, 250000, note.Amount)
	assert.Equal(t, r.ID, note.RefundRequestID)

	got, err := f.svc.Get(testutil.Ctx(f.manager), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundApproved, got.Status)
	assert.Equal(t, f.manager.ID, got.ApproverID)
	require.NotNil(t, got.ResolvedAt)

	// The approval's audit entry committed with it.
	entries, _, err := f.audit.List(testutil.Ctx(f.owner), f.dal, domain.AuditFilter{})
	require.NoError(t, err)
	var found bool
	for _, e := range entries {
		if e.Action == "APPROVE_REFUND" {
			found = true
			assert.Equal(t, domain.RiskMedium, e.RiskLevel)
			assert.Equal(t, []any{"PENDING", "APPROVED"}, e.Diff["status"])
		}
	}
	assert.True(t, found, "approval must be audited")
}

func TestSelfApprovalForbidden(t *testing.T) {
	f := newFixture(t)
	r := f.request(t, 100000)

	_, err := f.svc.Approve(testutil.Ctx(f.reception), r.ID, domain.RefundModeCash)
	var denied *domain.AccessDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, domain.CodeSelfApprovalForbidden, denied.Code)

	_, err = f.svc.Reject(testutil.Ctx(f.reception), r.ID, "trying to reject my own request")
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, domain.CodeSelfApprovalForbidden, denied.Code)
}

func TestApproveRecomputesRefundableCeiling(t *testing.T) {
	f := newFixture(t)

	// Both requests are valid when filed: the full 300,000 is refundable.
	first := f.request(t, 250000)
	stale := f.request(t, 100000)

	_, err := f.svc.Approve(testutil.Ctx(f.manager), first.ID, domain.RefundModeCreditNote)
	require.NoError(t, err)

	// Only 50,000 remain; the stale request's captured ceiling must not be
	// trusted at approval time.
	_, err = f.svc.Approve(testutil.Ctx(f.manager), stale.ID, domain.RefundModeCreditNote)
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, domain.CodeInsufficientRefundableAmount, validation.Code)

	// The remainder can still be refunded exactly, and not a unit more.
	rest := f.request(t, 50000)
	_, err = f.svc.Approve(testutil.Ctx(f.manager), rest.ID, domain.RefundModeCash)
	require.NoError(t, err)

	total, err := repository.NewCreditNoteRepo().TotalForBooking(testutil.Ctx(f.manager), f.dal, f.booking.ID)
	require.NoError(t, err)
	assert.EqualValues(t, f.booking.AmountPaid, total)

	_, err = f.svc.Request(testutil.Ctx(f.reception), domain.CreateRefundRequest{
		BookingID: f.booking.ID, Amount: 1, ReasonCode: "X",
	})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, domain.CodeInsufficientRefundableAmount, validation.Code)
}

func TestResolvedRequestsAreTerminal(t *testing.T) {
	f := newFixture(t)
	r := f.request(t, 100000)

	_, err := f.svc.Reject(testutil.Ctx(f.manager), r.ID, "amount disputed with guest")
	require.NoError(t, err)

	var conflict *domain.ConflictError
	_, err = f.svc.Approve(testutil.Ctx(f.owner), r.ID, domain.RefundModeCash)
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.CodeAlreadyResolved, conflict.Code)

	_, err = f.svc.Reject(testutil.Ctx(f.owner), r.ID, "second rejection")
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.CodeAlreadyResolved, conflict.Code)
}

func TestRejectRequiresNote(t *testing.T) {
	f := newFixture(t)
	r := f.request(t, 100000)

	_, err := f.svc.Reject(testutil.Ctx(f.manager), r.ID, "   ")
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestConcurrentApproversExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	r := f.request(t, 100000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	approvers := []*domain.User{f.manager, f.owner}
	for i := range approvers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Approve(testutil.Ctx(approvers[i]), r.ID, domain.RefundModeCreditNote)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict), "loser must see a conflict, got %v", err)
		assert.Equal(t, domain.CodeAlreadyResolved, conflict.Code)
		losses++
	}
	assert.Equal(t, 1, wins, "exactly one approver wins")
	assert.Equal(t, 1, losses)

	// Exactly one credit note exists.
	notes := repository.NewCreditNoteRepo()
	note, err := notes.GetByRefundRequest(testutil.Ctx(f.manager), f.dal, r.ID)
	require.NoError(t, err)
	total, err := notes.TotalForBooking(testutil.Ctx(f.manager), f.dal, f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Amount, total)
}
