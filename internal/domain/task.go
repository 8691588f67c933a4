package domain

// Размеры страниц постраничных выборок
const (
	// TasksPageSize размер страницы списка всех задач фазы
	TasksPageSize = 50
	// MyTasksPageSize размер страницы списка задач, назначенных пользователю
	MyTasksPageSize = 25
	// PreviousProjectsPageSize размер страницы списка закрытых проектов
	PreviousProjectsPageSize = 25
)

// Task представляет задачу внутри фазы
type Task struct {
	TaskID       string `json:"taskId"`
	PhaseID      string `json:"phaseId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AssignedTo   string `json:"assignedTo"`
	AssignedName string `json:"assignedName,omitempty"`
	Status       Status `json:"status"`
}

// IsAssignee проверяет что задача назначена на пользователя
func (t *Task) IsAssignee(userID string) bool {
	return t.AssignedTo == userID
}
