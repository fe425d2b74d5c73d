package forecast

import (
	"time"

	"example.com/balance-forecast/internal/models"
)

// BillOverlay maps a zero-based forecast day offset to the bill amount due that day.
type BillOverlay map[int]float64

// BuildBillOverlay раскладывает неоплаченные счета по дням прогноза.
// Offset 0 is tomorrow; bills due today or earlier stay out of the overlay.
func BuildBillOverlay(bills []models.Bill, now time.Time, forecastDays int) BillOverlay {
	overlay := make(BillOverlay)
	for _, bill := range bills {
		if bill.Completed {
			continue
		}

		offset := daysBetween(now, bill.DueDate) - 1
		if offset < 0 || offset >= forecastDays {
			continue
		}

		amount := bill.Amount.InexactFloat64()
		if amount <= 0 {
			continue
		}
		overlay[offset] += amount
	}

	return overlay
}

func pendingBills(bills []models.Bill) []models.Bill {
	out := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if bill.Completed || !bill.Amount.IsPositive() {
			continue
		}
		out = append(out, bill)
	}
	return out
}

func billsTotal(bills []models.Bill) float64 {
	var total float64
	for _, bill := range bills {
		total += bill.Amount.InexactFloat64()
	}
	return total
}
