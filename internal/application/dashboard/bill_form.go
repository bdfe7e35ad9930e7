package dashboard

import (
	"strings"
	"time"

	"github.com/garyjia/bill-collection-dashboard/internal/domain/entity"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// BillForm is the add-bill form as submitted by the user
type BillForm struct {
	CustomerName   string  `form:"customer_name" validate:"required"`
	CustomerPhone  string  `form:"customer_phone" validate:"required,phone"`
	CustomerEmail  string  `form:"customer_email" validate:"optemail"`
	ConsumerNumber string  `form:"consumer_number" validate:"required"`
	BillNumber     string  `form:"bill_number" validate:"required"`
	BillAmount     float64 `form:"bill_amount" validate:"gt=0"`
	DueDate        string  `form:"due_date" validate:"required"`
	BillingPeriod  string  `form:"billing_period"`
}

// dueDateLayouts are the forms a date or datetime-local input submits
var dueDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func (f *BillForm) trim() {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerPhone = strings.TrimSpace(f.CustomerPhone)
	f.CustomerEmail = strings.TrimSpace(f.CustomerEmail)
	f.ConsumerNumber = strings.TrimSpace(f.ConsumerNumber)
	f.BillNumber = strings.TrimSpace(f.BillNumber)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.BillingPeriod = strings.TrimSpace(f.BillingPeriod)
}

// toInput converts the form into the backend payload. Dates without a zone
// are read in loc and sent as UTC ISO-8601.
func (f BillForm) toInput(loc *time.Location) (entity.BillInput, error) {
	due, err := parseDueDate(f.DueDate, loc)
	if err != nil {
		return entity.BillInput{}, err
	}

	input := entity.BillInput{
		CustomerName:   f.CustomerName,
		CustomerPhone:  f.CustomerPhone,
		ConsumerNumber: f.ConsumerNumber,
		BillNumber:     f.BillNumber,
		BillAmount:     f.BillAmount,
		DueDate:        due.UTC().Format(time.RFC3339),
	}
	if f.CustomerEmail != "" {
		email := f.CustomerEmail
		input.CustomerEmail = &email
	}
	if f.BillingPeriod != "" {
		period := f.BillingPeriod
		input.BillingPeriod = &period
	}
	return input, nil
}

func parseDueDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &utils.ValidationError{Field: "DueDate", Message: "Invalid due date"}
}
