package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Template вид уведомления
type Template string

const (
	TemplateEventConfirmed    Template = "event_confirmed"
	TemplateShowingScheduled  Template = "showing_scheduled"
	TemplateBookingUpdated    Template = "booking_updated"
	TemplateCancelledCustomer Template = "booking_cancelled_customer"
	TemplateCancelledAdmin    Template = "booking_cancelled_admin"
	TemplatePaymentReceipt    Template = "payment_receipt"
	TemplateNewBookingAdmin   Template = "new_booking_admin"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки SMTP и адресатов
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	VenueName  string
	AdminEmail string
	ManageURL  string // базовый URL страницы управления бронированием
}

// Mailer отправляет транзакционные письма по SMTP.
// При пустом Host отправка заменяется логированием (dev-режим),
// чтобы окружения без SMTP не валили уведомления.
type Mailer struct {
	cfg Config
	cal *calendar.Calendar
	log Logger
}

// New создает новый mailer
func New(cfg Config, cal *calendar.Calendar, log Logger) *Mailer {
	return &Mailer{cfg: cfg, cal: cal, log: log}
}

// Send отправляет письмо по шаблону для бронирования.
// Админские шаблоны уходят на AdminEmail, остальные - клиенту.
func (m *Mailer) Send(ctx context.Context, template Template, booking *domain.Booking) error {
	subject, body, err := m.render(template, booking)
	if err != nil {
		return err
	}

	recipient := booking.CustomerEmail
	if template == TemplateCancelledAdmin || template == TemplateNewBookingAdmin {
		recipient = m.cfg.AdminEmail
	}

	if m.cfg.Host == "" {
		m.log.Info("[MOCK EMAIL] template=%s to=%s subject=%q", template, recipient, subject)
		return nil
	}

	msg := m.buildMessage(recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{recipient}, msg); err != nil {
		return fmt.Errorf("%w: template=%s: %v", ErrSendFailed, template, err)
	}

	m.log.Info("Send: delivered template=%s booking=%d", template, booking.ID)
	return nil
}

func (m *Mailer) buildMessage(to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.Username))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

func (m *Mailer) render(template Template, b *domain.Booking) (subject, body string, err error) {
	when := m.cal.FormatForDisplay(b.StartTime)
	venue := m.cfg.VenueName

	switch template {
	case TemplateEventConfirmed:
		subject = fmt.Sprintf("Your event at %s is confirmed", venue)
		body = fmt.Sprintf(
			"Hi %s,\n\n"+
				"Your event rental on %s is confirmed.\n\n"+
				"Total: %s\nPaid so far: %s\n\n"+
				"%s\n\n"+
				"See you soon,\n%s\n",
			b.CustomerName, when, formatCents(b.TotalCents), formatCents(b.AmountPaidCents),
			m.manageLine(b), venue)

	case TemplateShowingScheduled:
		subject = fmt.Sprintf("Your tour of %s is scheduled", venue)
		body = fmt.Sprintf(
			"Hi %s,\n\n"+
				"Your tour is scheduled for %s.\n\n"+
				"%s\n\n"+
				"See you soon,\n%s\n",
			b.CustomerName, when, m.manageLine(b), venue)

	case TemplateBookingUpdated:
		subject = fmt.Sprintf("Your booking at %s was updated", venue)
		body = fmt.Sprintf(
			"Hi %s,\n\n"+
				"The details of your booking on %s were updated.\n\n"+
				"%s\n\n"+
				"%s\n",
			b.CustomerName, when, m.manageLine(b), venue)

	case TemplateCancelledCustomer:
		kind := "event rental"
		if b.BookingType == domain.TypeShowing {
			kind = "tour"
		}
		subject = fmt.Sprintf("Your %s at %s was cancelled", kind, venue)
		body = fmt.Sprintf(
			"Hi %s,\n\n"+
				"Your %s on %s has been cancelled.\n\n"+
				"If this was a mistake, please contact us.\n\n%s\n",
			b.CustomerName, kind, when, venue)

	case TemplateCancelledAdmin:
		subject = fmt.Sprintf("[%s] Booking #%d cancelled", venue, b.ID)
		body = fmt.Sprintf(
			"Booking #%d (%s) for %s on %s has been cancelled.\n",
			b.ID, b.BookingType, b.CustomerName, when)

	case TemplatePaymentReceipt:
		subject = fmt.Sprintf("Payment received - %s", venue)
		body = fmt.Sprintf(
			"Hi %s,\n\n"+
				"We received your payment for the event on %s.\n\n"+
				"Paid to date: %s\nRemaining balance: %s\n\n%s\n",
			b.CustomerName, when, formatCents(b.AmountPaidCents),
			formatCents(b.RemainingBalanceCents()), venue)

	case TemplateNewBookingAdmin:
		subject = fmt.Sprintf("[%s] New %s booking #%d", venue, b.BookingType, b.ID)
		body = fmt.Sprintf(
			"New %s booking #%d:\n\nCustomer: %s <%s>\nWhen: %s\nTotal: %s\n",
			b.BookingType, b.ID, b.CustomerName, b.CustomerEmail, when, formatCents(b.TotalCents))

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}

	return subject, body, nil
}

// manageLine строит строку со ссылкой самообслуживания.
// Ссылка включает bearer-токен, поэтому в логи она не попадает.
func (m *Mailer) manageLine(b *domain.Booking) string {
	if b.ManagementToken == nil || m.cfg.ManageURL == "" {
		return "To make changes, reply to this email."
	}
	return fmt.Sprintf("Manage your booking: %s/%s", strings.TrimRight(m.cfg.ManageURL, "/"), *b.ManagementToken)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
