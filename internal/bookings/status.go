package bookings

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// IsValidInitial checks whether a booking may be created in this status.
// Cancelled is terminal and never a starting point.
func (s Status) IsValidInitial() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}
