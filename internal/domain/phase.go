package domain

// Phase представляет фазу проекта
type Phase struct {
	PhaseID   string `json:"phaseId"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Status    Status `json:"status"`
}

// Progress представляет вычисляемый прогресс проекта.
// Прогресс не хранится: это доля завершенных фаз от общего числа фаз.
// Для проекта без фаз прогресс равен 0.
type Progress struct {
	ProjectID string  `json:"projectId"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Progress  float64 `json:"progress"`
}
