package allocation

import "errors"

var (
	// ErrNoSlotAvailable возвращается, когда нет свободных слотов запрошенной категории
	ErrNoSlotAvailable = errors.New("allocation: no available slot for category")
)
