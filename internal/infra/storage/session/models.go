package session

import "time"

// Record сохранённое состояние мастера одной сессии
type Record struct {
	ID        string
	Payload   []byte // JSON cart.Payload
	CartHash  string
	StepID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
