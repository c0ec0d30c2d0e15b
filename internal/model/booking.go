package model

import "time"

// Booking запись пациента к специалисту на конкретный слот.
// После создания не изменяется: только создание и удаление.
type Booking struct {
	ID        int64     `json:"id" bson:"_id"`
	Surname   string    `json:"surname" bson:"surname"`
	Date      time.Time `json:"date" bson:"date"`
	Worker    string    `json:"worker" bson:"worker"`
	Time      string    `json:"time" bson:"time"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DateString возвращает дату записи в формате YYYY-MM-DD
func (b *Booking) DateString() string {
	return b.Date.Format("2006-01-02")
}
