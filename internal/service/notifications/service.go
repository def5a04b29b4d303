package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/mailer"
)

// Event вид доменного события, порождающего письма
type Event string

const (
	EventBookingCreated   Event = "booking_created"
	EventBookingConfirmed Event = "booking_confirmed"
	EventBookingUpdated   Event = "booking_updated"
	EventBookingCancelled Event = "booking_cancelled"
	EventPaymentReceived  Event = "payment_received"
)

const sendTimeout = 15 * time.Second

// Service рассылает уведомления по доменным событиям.
// Отправка асинхронная: сбой письма логируется и считается в метриках,
// но никогда не откатывает породившую его операцию.
type Service struct {
	sender  Sender
	log     Logger
	metrics Metrics
	wg      sync.WaitGroup
}

func New(sender Sender, log Logger, metrics Metrics) *Service {
	return &Service{sender: sender, log: log, metrics: metrics}
}

// Dispatch запускает рассылку писем для события в фоне.
// Копия бронирования снимается до возврата, чтобы вызывающая сторона
// могла дальше мутировать свою структуру.
func (s *Service) Dispatch(event Event, booking *domain.Booking) {
	if booking == nil {
		return
	}
	snapshot := *booking

	templates := templatesFor(event, &snapshot)
	if len(templates) == 0 {
		s.log.Warn("Dispatch: no templates for event=%s booking=%d", event, snapshot.ID)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		for _, tpl := range templates {
			if err := s.sender.Send(ctx, tpl, &snapshot); err != nil {
				s.log.Error("Dispatch: event=%s booking=%d template=%s: %v", event, snapshot.ID, tpl, err)
				if s.metrics != nil {
					s.metrics.IncNotificationFailure(string(tpl))
				}
			}
		}
	}()
}

// Wait блокируется до завершения всех фоновых рассылок.
// Используется при graceful shutdown и в тестах.
func (s *Service) Wait() {
	s.wg.Wait()
}

// templatesFor выбирает набор писем для события с учетом типа бронирования
func templatesFor(event Event, b *domain.Booking) []mailer.Template {
	switch event {
	case EventBookingCreated:
		templates := []mailer.Template{mailer.TemplateNewBookingAdmin}
		if b.BookingType == domain.TypeShowing {
			// Туры подтверждаются сразу при создании
			templates = append(templates, mailer.TemplateShowingScheduled)
		}
		return templates

	case EventBookingConfirmed:
		return []mailer.Template{mailer.TemplateEventConfirmed}

	case EventBookingUpdated:
		return []mailer.Template{mailer.TemplateBookingUpdated}

	case EventBookingCancelled:
		return []mailer.Template{mailer.TemplateCancelledCustomer, mailer.TemplateCancelledAdmin}

	case EventPaymentReceived:
		return []mailer.Template{mailer.TemplatePaymentReceipt}
	}

	return nil
}
