package board

import "time"

// RecomputeAge derives DaysInStage from StageEnteredAt at the supplied time
// and returns the adjusted stock. An unset StageEnteredAt self-heals to now
// with zero days. Fractional days truncate downward and a future entry
// timestamp yields zero, never a negative count.
func RecomputeAge(stock Stock, now time.Time) Stock {
	if stock.StageEnteredAt.IsZero() {
		stock.StageEnteredAt = now
		stock.DaysInStage = 0
		return stock
	}

	days := int(now.Sub(stock.StageEnteredAt) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	stock.DaysInStage = days
	return stock
}
