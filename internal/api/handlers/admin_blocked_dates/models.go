package admin_blocked_dates

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// CreateBlockedDateRequest HTTP request model
type CreateBlockedDateRequest struct {
	Date   string `json:"date"` // "YYYY-MM-DD"
	Reason string `json:"reason"`
}

// BlockedDateResponse HTTP response model
type BlockedDateResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"createdAt"`
}

// BlockedDatesListResponse HTTP response model списка
type BlockedDatesListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// FromDomain конвертирует заблокированную дату в HTTP response
func FromDomain(blocked *domain.BlockedDate, cal *calendar.Calendar) BlockedDateResponse {
	return BlockedDateResponse{
		ID:        blocked.ID,
		Date:      cal.FormatDate(blocked.Date),
		Reason:    blocked.Reason,
		CreatedAt: blocked.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainList конвертирует список заблокированных дат в HTTP response
func FromDomainList(list []*domain.BlockedDate, cal *calendar.Calendar) *BlockedDatesListResponse {
	out := &BlockedDatesListResponse{BlockedDates: make([]BlockedDateResponse, 0, len(list))}
	for _, blocked := range list {
		out.BlockedDates = append(out.BlockedDates, FromDomain(blocked, cal))
	}
	return out
}
