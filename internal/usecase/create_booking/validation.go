package create_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.SubCourtIndex < 0 {
		return fmt.Errorf("%w: subCourtIndex must not be negative", ErrInvalidInput)
	}

	if !req.GameMode.Valid() {
		return fmt.Errorf("%w: unknown game mode %q", ErrInvalidInput, req.GameMode)
	}

	return nil
}
