// Package format holds the pure formatting helpers used by the dashboard
// views: currency, dates, durations, status badges and rates.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is shown for missing values
const NotAvailable = "N/A"

const rupee = "₹"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats amount as Indian rupees with en-IN digit grouping and
// exactly two decimals.
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := inrPrinter.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return sign + rupee + digits
}

// Date formats t as "15 Jan 2025"
func Date(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// DateTime formats t as "15 Jan 2025, 02:30 pm"
func DateTime(t time.Time) string {
	return t.Format("2 Jan 2006, 03:04 pm")
}

// Duration renders a call length in seconds as "1m 5s" or "45s".
// Zero or negative durations are unknown.
func Duration(seconds int) string {
	if seconds <= 0 {
		return NotAvailable
	}
	minutes := seconds / 60
	remaining := seconds % 60
	if minutes > 0 {
		return strconv.Itoa(minutes) + "m " + strconv.Itoa(remaining) + "s"
	}
	return strconv.Itoa(seconds) + "s"
}

// Badge is the structured form of a status pill
type Badge struct {
	Label string
	Class string
}

// StatusBadge maps a status value to its badge
func StatusBadge(status string) Badge {
	return Badge{
		Label: status,
		Class: "status-" + strings.ToLower(status),
	}
}

// Round1 rounds x to one decimal place
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Ratio returns part/whole*100 rounded to one decimal, or 0 when whole is 0.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round1(float64(part) / float64(whole) * 100)
}

// CollectionRate is the share of paid bills in percent
func CollectionRate(paid, total int) float64 {
	return Ratio(paid, total)
}

// Percent renders a rate with one decimal and a percent sign
func Percent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

// Time-of-day greetings
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

// TimeOfDay classifies the wall-clock hour of t
func TimeOfDay(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	default:
		return Evening
	}
}
