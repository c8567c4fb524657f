package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocks říká, jestli rezervace v tomto stavu blokuje termín.
// Dostupnost se počítá jen proti potvrzeným rezervacím.
func (s Status) Blocks() bool {
	return s == StatusConfirmed
}

// CanTransition definuje životní cyklus stavů. Raw edit přes admin
// formulář tímto neprochází, ten přepisuje stav bez kontroly.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}
