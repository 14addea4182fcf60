package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
