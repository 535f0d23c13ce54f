package orders

import "errors"

var (
	ErrEmptyOrder     = errors.New("order must contain at least one ticket")
	ErrFlightNotFound = errors.New("flight not found")
	ErrOrderNotFound  = errors.New("order not found")

	// ErrSeatTaken covers conflicts detected by the storage unique
	// constraint, where the losing transaction cannot tell which request
	// collided. Conflicts caught during validation carry coordinates as
	// *seatmap.ConflictError instead.
	ErrSeatTaken = errors.New("seat is already taken")
)
