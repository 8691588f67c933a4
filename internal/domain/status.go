package domain

// Status представляет статус фазы или задачи
type Status string

// Возможные статусы. Переходы не ограничены: любой статус
// достижим из любого другого.
const (
	StatusInProgress   Status = "in progress"
	StatusCompleted    Status = "completed"
	StatusIssue        Status = "issue"
	StatusNotCompleted Status = "not completed"
)

// IsValid проверяет что статус входит в список допустимых
func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusIssue, StatusNotCompleted:
		return true
	}
	return false
}
