package model

// DefaultWorkers специалисты клиники по умолчанию
var DefaultWorkers = Workers{"Хирург", "Терапевт", "Ортопед"}

// Workers фиксированный упорядоченный список специалистов
type Workers []string

// Contains проверяет что специалист есть в списке
func (w Workers) Contains(name string) bool {
	for _, worker := range w {
		if worker == name {
			return true
		}
	}
	return false
}
