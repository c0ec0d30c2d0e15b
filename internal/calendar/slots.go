package calendar

import "fmt"

const (
	firstSlotHour = 9
	endSlotHour   = 19 // не включительно
	slotMinutes   = 30
)

// TimeSlots возвращает слоты дня с 09:00 до 18:30 с шагом 30 минут
func TimeSlots() []string {
	slots := make([]string, 0, (endSlotHour-firstSlotHour)*60/slotMinutes)
	for hour := firstSlotHour; hour < endSlotHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// IsSlot проверяет что метка времени является одним из слотов дня
func IsSlot(label string) bool {
	for _, slot := range TimeSlots() {
		if slot == label {
			return true
		}
	}
	return false
}
