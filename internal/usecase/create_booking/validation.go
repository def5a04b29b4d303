package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.BookingType.IsValid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if req.EventDate == "" {
		return fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}

	if err := validateContact(req); err != nil {
		return err
	}

	switch req.BookingType {
	case domain.TypeEvent:
		return validateEventFields(req)
	case domain.TypeShowing:
		return validateShowingFields(req)
	}
	return nil
}

func validateContact(req *Request) error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: customerEmail is not a valid address", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}
	return nil
}

func validateEventFields(req *Request) error {
	if req.StartTime == "" || req.EndTime == "" {
		return fmt.Errorf("%w: startTime and endTime are required for events", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if req.SetupNotes != nil && len(*req.SetupNotes) > domain.MaxSetupNotesLength {
		return fmt.Errorf("%w: setupNotes are too long", ErrInvalidInput)
	}
	if req.TableCount != nil && *req.TableCount < 0 {
		return fmt.Errorf("%w: tableCount must not be negative", ErrInvalidInput)
	}
	if req.ChairCount != nil && *req.ChairCount < 0 {
		return fmt.Errorf("%w: chairCount must not be negative", ErrInvalidInput)
	}

	if !req.ContractAccepted {
		return ErrContractNotAccepted
	}
	if req.ContractSignerName == nil || strings.TrimSpace(*req.ContractSignerName) == "" {
		return fmt.Errorf("%w: contract signer name is required", ErrInvalidInput)
	}
	return nil
}

func validateShowingFields(req *Request) error {
	if req.AppointmentTime == "" {
		return fmt.Errorf("%w: appointmentTime is required for showings", ErrInvalidInput)
	}
	if err := req.AppointmentTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid appointmentTime: %v", ErrInvalidInput, err)
	}
	return nil
}
