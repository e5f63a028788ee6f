package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approve() *domain.BillStatus {
	s := domain.BillApproved
	return &s
}

func createDraft(t *testing.T, f *ledgerFixture, lines ...dto.BillLineRequest) *domain.Bill {
	t.Helper()
	bill, err := f.bills.CreateBill(f.ctx, testWorkplaceID, dto.CreateBillRequest{
		VendorID:     "vendor-1",
		BillDate:     dto.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		DueDate:      dto.NewDate(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)),
		CurrencyCode: "usd",
		Lines:        lines,
	}, testUserID)
	require.NoError(t, err)
	return bill
}

func lineReq(productID string, qty, unitCost, taxRate string) dto.BillLineRequest {
	r := dto.BillLineRequest{Description: "item", Quantity: d(qty), UnitCost: d(unitCost), TaxRate: d(taxRate)}
	if productID != "" {
		r.ProductID = strPtr(productID)
	}
	return r
}

func TestCreateBill_ComputesTotals(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	bill := createDraft(t, f,
		lineReq("", "2", "50", "0.1"),
		lineReq("", "1", "20", "0"))

	assert.Equal(t, domain.BillDraft, bill.Status)
	assert.Equal(t, "BILL-000001", bill.BillNumber)
	assert.Equal(t, "USD", bill.CurrencyCode)
	assert.True(t, bill.Subtotal.Equal(d("120")))
	assert.True(t, bill.TaxAmount.Equal(d("10")))
	assert.True(t, bill.Total.Equal(bill.Subtotal.Add(bill.TaxAmount)))
	require.Len(t, bill.Lines, 2)
	assert.True(t, bill.Lines[0].LineTotal.Equal(d("100")))
	assert.Equal(t, 2, bill.Lines[1].LineNumber)

	second := createDraft(t, f, lineReq("", "1", "1", "0"))
	assert.Equal(t, "BILL-000002", second.BillNumber)
}

func TestCreateBill_Validation(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)

	tests := []struct {
		name string
		req  dto.CreateBillRequest
	}{
		{"missing vendor", dto.CreateBillRequest{CurrencyCode: "USD"}},
		{"due before bill date", dto.CreateBillRequest{
			VendorID:     "v",
			CurrencyCode: "USD",
			BillDate:     dto.NewDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
			DueDate:      dto.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		}},
		{"negative unit cost", dto.CreateBillRequest{VendorID: "v", CurrencyCode: "USD", Lines: []dto.BillLineRequest{lineReq("", "1", "-1", "0")}}},
		{"tax rate above one", dto.CreateBillRequest{VendorID: "v", CurrencyCode: "USD", Lines: []dto.BillLineRequest{lineReq("", "1", "1", "1.5")}}},
		{"line without description or product", dto.CreateBillRequest{VendorID: "v", CurrencyCode: "USD", Lines: []dto.BillLineRequest{{Quantity: d("1"), UnitCost: d("1")}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bills.CreateBill(f.ctx, testWorkplaceID, tt.req, testUserID)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
	assert.Empty(t, f.store.bills)
}

func TestUpdateBill_ApproveReceivesInventory(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")
	draft := createDraft(t, f, lineReq(p.ProductID, "10", "5.00", "0"))

	updated, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.BillApproved, updated.Status)
	assert.Equal(t, domain.BillApproved, f.store.bills[draft.BillID].Status)
	assert.True(t, f.product(p.ProductID).QuantityOnHand.Equal(d("10")))
	assert.Len(t, f.store.movements, 1)
	require.Len(t, f.store.journalsByReference(domain.ReferenceBill, draft.BillID), 1)
}

func TestUpdateBill_ReplaceLinesThenApprove(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")
	draft := createDraft(t, f, lineReq(p.ProductID, "1", "1", "0"))

	updated, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{
		LineItems: []dto.BillLineRequest{
			lineReq(p.ProductID, "4", "2.50", "0.2"),
			lineReq("", "1", "15", "0"),
		},
		Notes:  strPtr("corrected"),
		Status: approve(),
	}, testUserID)
	require.NoError(t, err)

	assert.True(t, updated.Subtotal.Equal(d("25")))
	assert.True(t, updated.TaxAmount.Equal(d("2")))
	assert.True(t, updated.Total.Equal(d("27")))
	assert.Equal(t, "corrected", updated.Notes)

	stored := f.store.bills[draft.BillID]
	require.Len(t, stored.Lines, 2)
	assert.True(t, stored.Lines[0].Quantity.Equal(d("4")))
	// Stock comes from the replacement lines, not the original one.
	assert.True(t, f.product(p.ProductID).QuantityOnHand.Equal(d("4")))
}

func TestUpdateBill_Rejections(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")

	paid := f.storeBill(domain.BillPaid, productLine(p.ProductID, "1", "1"))
	_, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, paid.BillID, dto.UpdateBillRequest{Notes: strPtr("x")}, testUserID)
	require.True(t, errors.Is(err, apperrors.ErrValidation))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Cannot edit paid or voided bills", appErr.Message)

	voided := f.storeBill(domain.BillVoid)
	_, err = f.bills.UpdateBill(f.ctx, testWorkplaceID, voided.BillID, dto.UpdateBillRequest{Notes: strPtr("x")}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	empty := f.storeBill(domain.BillDraft)
	_, err = f.bills.UpdateBill(f.ctx, testWorkplaceID, empty.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, domain.BillDraft, f.store.bills[empty.BillID].Status)

	approved := f.storeBill(domain.BillApproved, productLine(p.ProductID, "1", "1"))
	_, err = f.bills.UpdateBill(f.ctx, testWorkplaceID, approved.BillID, dto.UpdateBillRequest{
		Lines: []dto.BillLineRequest{lineReq(p.ProductID, "2", "1", "0")},
	}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	draft := f.storeBill(domain.BillDraft, productLine(p.ProductID, "1", "1"))
	paidStatus := domain.BillPaid
	_, err = f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: &paidStatus}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = f.bills.UpdateBill(f.ctx, testWorkplaceID, "missing", dto.UpdateBillRequest{}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateBill_StrictPolicyRollsBackApproval(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	f.removeAccount(f.payableAcc)
	p := f.addProduct("WIDGET", "0", "0")
	draft := createDraft(t, f, lineReq(p.ProductID, "10", "5", "0"))

	_, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	require.Error(t, err)

	assert.Equal(t, domain.BillDraft, f.store.bills[draft.BillID].Status)
	assert.True(t, f.product(p.ProductID).QuantityOnHand.IsZero())
	assert.Empty(t, f.store.movements)
}

func TestUpdateBill_LenientPolicyKeepsApproval(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyLenient)
	f.removeAccount(f.payableAcc)
	p := f.addProduct("WIDGET", "0", "0")
	draft := createDraft(t, f, lineReq(p.ProductID, "10", "5", "0"))

	updated, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.BillApproved, updated.Status)
	assert.Equal(t, domain.BillApproved, f.store.bills[draft.BillID].Status)
	// The failed side effect leaves no partial stock change behind.
	assert.True(t, f.product(p.ProductID).QuantityOnHand.IsZero())
	assert.Empty(t, f.store.movements)

	// Once the account exists the bill can be repaired.
	f.payableAcc = f.addAccount("2000", domain.Liability)
	res, err := f.bills.ReprocessInventory(f.ctx, testWorkplaceID, draft.BillID, testUserID)
	require.NoError(t, err)
	assert.False(t, res.AlreadyProcessed)
	assert.True(t, f.product(p.ProductID).QuantityOnHand.Equal(d("10")))
}

func TestVoidBill_ReversesInventory(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")
	draft := createDraft(t, f, lineReq(p.ProductID, "10", "5", "0"))
	_, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	require.NoError(t, err)

	voided, reversal, err := f.bills.VoidBill(f.ctx, testWorkplaceID, draft.BillID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.BillVoid, voided.Status)
	assert.True(t, reversal.Reversed)
	require.NotNil(t, reversal.JournalEntryID)
	assert.True(t, f.product(p.ProductID).QuantityOnHand.IsZero())
	assert.True(t, f.balance(f.inventoryAcc).IsZero())
	assert.True(t, f.balance(f.payableAcc).IsZero())

	_, _, err = f.bills.VoidBill(f.ctx, testWorkplaceID, draft.BillID, testUserID)
	require.True(t, errors.Is(err, apperrors.ErrValidation))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Bill is already voided", appErr.Message)
}

func TestVoidBill_Rejections(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)

	draft := f.storeBill(domain.BillDraft)
	_, _, err := f.bills.VoidBill(f.ctx, testWorkplaceID, draft.BillID, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	paid := f.storeBill(domain.BillPaid)
	_, _, err = f.bills.VoidBill(f.ctx, testWorkplaceID, paid.BillID, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, _, err = f.bills.VoidBill(f.ctx, testWorkplaceID, "missing", testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestVoidBill_LenientPolicyReportsNotReversed(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyLenient)
	p := f.addProduct("WIDGET", "0", "0")
	bill := f.storeBill(domain.BillApproved, productLine(p.ProductID, "10", "5"))
	_, err := f.process(bill)
	require.NoError(t, err)

	sold := f.store.products[p.ProductID]
	sold.QuantityOnHand = d("2")
	f.store.products[p.ProductID] = sold

	voided, reversal, err := f.bills.VoidBill(f.ctx, testWorkplaceID, bill.BillID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.BillVoid, voided.Status)
	assert.False(t, reversal.Reversed)
	assert.Nil(t, reversal.JournalEntryID)
	assert.True(t, f.product(p.ProductID).QuantityOnHand.Equal(d("2")))
}

func TestVoidBill_StrictPolicyConflict(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")
	bill := f.storeBill(domain.BillApproved, productLine(p.ProductID, "10", "5"))
	_, err := f.process(bill)
	require.NoError(t, err)

	sold := f.store.products[p.ProductID]
	sold.QuantityOnHand = d("2")
	f.store.products[p.ProductID] = sold

	_, _, err = f.bills.VoidBill(f.ctx, testWorkplaceID, bill.BillID, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, domain.BillApproved, f.store.bills[bill.BillID].Status)
}

func TestDeleteBill(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)

	draft := createDraft(t, f, lineReq("", "1", "10", "0"))
	require.NoError(t, f.bills.DeleteBill(f.ctx, testWorkplaceID, draft.BillID, testUserID))
	assert.NotContains(t, f.store.bills, draft.BillID)

	approved := f.storeBill(domain.BillApproved)
	err := f.bills.DeleteBill(f.ctx, testWorkplaceID, approved.BillID, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	paidDraft := f.storeBill(domain.BillDraft, serviceLine("x", "1", "10"))
	b := f.store.bills[paidDraft.BillID]
	b.AmountPaid = d("1")
	f.store.bills[b.BillID] = b
	err = f.bills.DeleteBill(f.ctx, testWorkplaceID, paidDraft.BillID, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, f.store.bills, paidDraft.BillID)
}

func approveDraft(t *testing.T, f *ledgerFixture, lines ...dto.BillLineRequest) *domain.Bill {
	t.Helper()
	draft := createDraft(t, f, lines...)
	bill, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	require.NoError(t, err)
	return bill
}

func TestRecordPayment(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	bill := approveDraft(t, f, lineReq("", "1", "100", "0"))
	require.True(t, f.balance(f.payableAcc).Equal(d("100")))

	partial, err := f.bills.RecordPayment(f.ctx, testWorkplaceID, bill.BillID, dto.RecordPaymentRequest{Amount: d("40"), Reference: "CHK-1"}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.BillPartial, partial.Status)
	assert.True(t, partial.BalanceDue().Equal(d("60")))

	_, err = f.bills.RecordPayment(f.ctx, testWorkplaceID, bill.BillID, dto.RecordPaymentRequest{Amount: d("60.01")}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	paid, err := f.bills.RecordPayment(f.ctx, testWorkplaceID, bill.BillID, dto.RecordPaymentRequest{Amount: d("60")}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.BillPaid, paid.Status)
	assert.True(t, paid.BalanceDue().IsZero())

	payments, err := f.bills.ListPayments(f.ctx, testWorkplaceID, bill.BillID, testUserID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.NotNil(t, payments[0].JournalEntryID)
	entry := f.store.journals[*payments[0].JournalEntryID]
	assert.Equal(t, domain.SourceBills, entry.SourceModule)
	assert.Equal(t, domain.ReferenceBillPayment, *entry.ReferenceType)

	// Dr AP 100 / Cr cash 100 over the two payments clears the payable.
	assert.True(t, f.balance(f.payableAcc).IsZero())
	assert.True(t, f.balance(f.cashAcc).Equal(d("-100")))
	assert.True(t, f.balance(f.expenseAcc).Equal(d("100")))

	_, err = f.bills.RecordPayment(f.ctx, testWorkplaceID, bill.BillID, dto.RecordPaymentRequest{Amount: d("1")}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestApproveAndPay_PayableMatchesBillTotal(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")
	bill := approveDraft(t, f,
		lineReq(p.ProductID, "10", "5", "0.1"),
		lineReq("", "1", "20", "0"))
	require.True(t, bill.Total.Equal(d("75")))

	assert.True(t, f.balance(f.payableAcc).Equal(d("75")))
	assert.True(t, f.balance(f.inventoryAcc).Equal(d("50")))
	assert.True(t, f.balance(f.expenseAcc).Equal(d("20")))
	assert.True(t, f.balance(f.taxAcc).Equal(d("5")))

	charges := f.store.journalsByReference(domain.ReferenceBillCharges, bill.BillID)
	require.Len(t, charges, 1)
	assert.Equal(t, domain.SourceBills, charges[0].SourceModule)

	paid, err := f.bills.RecordPayment(f.ctx, testWorkplaceID, bill.BillID, dto.RecordPaymentRequest{Amount: d("75")}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.BillPaid, paid.Status)
	assert.True(t, f.balance(f.payableAcc).IsZero(), "AP %s", f.balance(f.payableAcc))
}

func TestApprove_ChargesNeedPostingAccount(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyLenient)
	f.removeAccount(f.taxAcc)
	draft := createDraft(t, f, lineReq("", "1", "100", "0.05"))

	_, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, draft.BillID, dto.UpdateBillRequest{Status: approve()}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
	assert.Equal(t, domain.BillDraft, f.store.bills[draft.BillID].Status)
	assert.Empty(t, f.store.journals)
}

func TestVoidBill_ReversesCharges(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	p := f.addProduct("WIDGET", "0", "0")
	bill := approveDraft(t, f,
		lineReq(p.ProductID, "2", "10", "0"),
		lineReq("", "1", "40", "0.25"))

	_, reversal, err := f.bills.VoidBill(f.ctx, testWorkplaceID, bill.BillID, testUserID)
	require.NoError(t, err)
	assert.True(t, reversal.Reversed)

	charges := f.store.journalsByReference(domain.ReferenceBillCharges, bill.BillID)
	require.Len(t, charges, 2)
	assert.Equal(t, domain.JournalReversed, f.store.journals[charges[0].JournalEntryID].Status)
	for _, acc := range []domain.Account{f.payableAcc, f.inventoryAcc, f.expenseAcc, f.taxAcc} {
		assert.True(t, f.balance(acc).IsZero(), "%s balance %s", acc.CFID, f.balance(acc))
	}
}

func TestUpdateBill_StatusOnlyMovesDraftToApproved(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	bill := approveDraft(t, f, lineReq("", "1", "100", "0"))

	for _, status := range []domain.BillStatus{domain.BillPaid, domain.BillPartial, domain.BillOverdue, domain.BillDraft} {
		t.Run(string(status), func(t *testing.T) {
			next := status
			_, err := f.bills.UpdateBill(f.ctx, testWorkplaceID, bill.BillID, dto.UpdateBillRequest{Status: &next}, testUserID)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
			stored := f.store.bills[bill.BillID]
			assert.Equal(t, domain.BillApproved, stored.Status)
			assert.True(t, stored.AmountPaid.IsZero())
		})
	}

	// The bill is still payable and voidable.
	_, _, err := f.bills.VoidBill(f.ctx, testWorkplaceID, bill.BillID, testUserID)
	require.NoError(t, err)
}

func TestRecordPayment_LenientPolicyStillStrict(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyLenient)
	bill := approveDraft(t, f, lineReq("", "1", "100", "0"))
	f.removeAccount(f.cashAcc)

	_, err := f.bills.RecordPayment(f.ctx, testWorkplaceID, bill.BillID, dto.RecordPaymentRequest{Amount: d("40")}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)

	stored := f.store.bills[bill.BillID]
	assert.Equal(t, domain.BillApproved, stored.Status)
	assert.True(t, stored.AmountPaid.IsZero())
	// Only the charges entry from approval exists.
	assert.Len(t, f.store.journals, 1)
	payments, err := f.bills.ListPayments(f.ctx, testWorkplaceID, bill.BillID, testUserID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestRecordPayment_DraftRejected(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	draft := f.storeBill(domain.BillDraft, serviceLine("x", "1", "10"))

	_, err := f.bills.RecordPayment(f.ctx, testWorkplaceID, draft.BillID, dto.RecordPaymentRequest{Amount: d("1")}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = f.bills.RecordPayment(f.ctx, testWorkplaceID, draft.BillID, dto.RecordPaymentRequest{Amount: d("0")}, testUserID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestMarkOverdueBills(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	late := f.storeBill(domain.BillApproved)
	b := f.store.bills[late.BillID]
	b.DueDate = time.Now().AddDate(0, 0, -3)
	f.store.bills[b.BillID] = b
	current := f.storeBill(domain.BillApproved)
	draft := f.storeBill(domain.BillDraft)
	stale := f.store.bills[draft.BillID]
	stale.DueDate = time.Now().AddDate(0, 0, -3)
	f.store.bills[stale.BillID] = stale

	n, err := f.bills.MarkOverdueBills(f.ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, domain.BillOverdue, f.store.bills[late.BillID].Status)
	assert.Equal(t, domain.BillApproved, f.store.bills[current.BillID].Status)
	assert.Equal(t, domain.BillDraft, f.store.bills[draft.BillID].Status)
}

func TestListBills_StatusFilter(t *testing.T) {
	f := newLedgerFixture(config.FailurePolicyStrict)
	f.storeBill(domain.BillDraft)
	f.storeBill(domain.BillApproved)

	status := "approved"
	page, err := f.bills.ListBills(f.ctx, testWorkplaceID, testUserID, dto.ListBillsParams{Status: &status})
	require.NoError(t, err)
	require.Len(t, page.Bills, 1)
	assert.Equal(t, domain.BillApproved, page.Bills[0].Status)

	bad := "pending"
	_, err = f.bills.ListBills(f.ctx, testWorkplaceID, testUserID, dto.ListBillsParams{Status: &bad})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
