package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// Confirmation prompts
const (
	ConfirmInitiateCall = "Are you sure you want to initiate a call for this bill?"
	ConfirmDeleteBill   = "Are you sure you want to delete this bill?"
	ConfirmBatchCalls   = "Initiate calls for all pending bills?"
)

// refresh re-fetches the views a mutation may have changed. There is no
// optimistic update; the next fetch is the only source of truth.
func (c *Controller) refresh(ctx context.Context) {
	_ = c.LoadDashboard(ctx)
	_, _ = c.LoadBillsTable(ctx, "")
}

// InitiateCall asks the backend to call the customer of billID.
// Nothing happens unless the user confirms.
func (c *Controller) InitiateCall(ctx context.Context, billID int64) error {
	if !c.confirmer.Confirm(ctx, ConfirmInitiateCall) {
		return nil
	}

	if _, err := c.api.InitiateCall(ctx, billID); err != nil {
		c.logger.Error("Error initiating call", "bill_id", billID, "error", err)
		c.notifier.Notify(port.ToastError, userMessage(err, "Failed to initiate call"))
		return err
	}

	c.notifier.Notify(port.ToastSuccess, "Call initiated successfully!")
	c.refresh(ctx)
	return nil
}

// DeleteBill deletes billID after confirmation
func (c *Controller) DeleteBill(ctx context.Context, billID int64) error {
	if !c.confirmer.Confirm(ctx, ConfirmDeleteBill) {
		return nil
	}

	if _, err := c.api.DeleteBill(ctx, billID); err != nil {
		c.logger.Error("Error deleting bill", "bill_id", billID, "error", err)
		c.notifier.Notify(port.ToastError, userMessage(err, "Failed to delete bill"))
		return err
	}

	c.notifier.Notify(port.ToastSuccess, "Bill deleted successfully!")
	c.refresh(ctx)
	return nil
}

// CreateBill validates the form locally and submits it. Invalid input
// never reaches the backend.
func (c *Controller) CreateBill(ctx context.Context, form BillForm) (*entity.Bill, error) {
	form.trim()

	input, err := c.checkForm(form)
	if err != nil {
		c.notifier.Notify(port.ToastError, userMessage(err, "Invalid bill details"))
		return nil, err
	}

	bill, err := c.api.CreateBill(ctx, input)
	if err != nil {
		c.logger.Error("Error creating bill", "bill_number", input.BillNumber, "error", err)
		c.notifier.Notify(port.ToastError, userMessage(err, "Failed to create bill"))
		return nil, err
	}

	c.notifier.Notify(port.ToastSuccess, "Bill created successfully!")
	c.refresh(ctx)
	return bill, nil
}

func (c *Controller) checkForm(form BillForm) (entity.BillInput, error) {
	if err := c.validate.Struct(form); err != nil {
		return entity.BillInput{}, utils.ToValidationError(err)
	}
	return form.toInput(c.renderer.Location())
}

// BatchResult summarizes one batch call run
type BatchResult struct {
	Pending   int
	Initiated int
	Skipped   int
}

// InitiatePendingCalls calls pending bills one at a time, spaced by
// BatchCallSpacing and capped at BatchCallLimit per run. The user is told
// how many pending bills the cap left out.
func (c *Controller) InitiatePendingCalls(ctx context.Context) (BatchResult, error) {
	var result BatchResult
	if !c.confirmer.Confirm(ctx, ConfirmBatchCalls) {
		return result, nil
	}

	list, err := c.api.PendingBills(ctx)
	if err != nil {
		c.logger.Error("Error initiating calls", "error", err)
		c.notifier.Notify(port.ToastError, userMessage(err, "Failed to initiate calls"))
		return result, err
	}

	bills := billsOf(list)
	result.Pending = len(bills)
	if len(bills) == 0 {
		c.notifier.Notify(port.ToastInfo, "No pending bills to call")
		return result, nil
	}

	batch := bills
	if limit := c.opts.BatchCallLimit; limit > 0 && len(batch) > limit {
		batch = batch[:limit]
	}
	result.Skipped = len(bills) - len(batch)

	if result.Skipped > 0 {
		c.notifier.Notify(port.ToastInfo, fmt.Sprintf(
			"Initiating calls for %d of %d pending bills; %d skipped by the batch limit",
			len(batch), len(bills), result.Skipped))
	} else {
		c.notifier.Notify(port.ToastInfo, fmt.Sprintf("Initiating calls for %d bills...", len(batch)))
	}

	for i, bill := range batch {
		if i > 0 {
			if err := sleep(ctx, c.opts.BatchCallSpacing); err != nil {
				c.logger.Error("Batch calls interrupted", "initiated", result.Initiated, "error", err)
				return result, err
			}
		}
		if _, err := c.api.InitiateCall(ctx, bill.ID); err != nil {
			c.logger.Error("Error initiating calls", "bill_id", bill.ID, "initiated", result.Initiated, "error", err)
			c.notifier.Notify(port.ToastError, userMessage(err, "Failed to initiate calls"))
			return result, err
		}
		result.Initiated++
	}

	c.logger.Info("Batch calls initiated",
		"initiated", result.Initiated,
		"pending", result.Pending,
		"skipped", result.Skipped)
	c.notifier.Notify(port.ToastSuccess, "Calls initiated successfully!")
	_ = c.LoadDashboard(ctx)
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
