package domain

import "time"

// Лимиты проектов
const (
	// MaxActiveProjects максимум открытых проектов на пользователя (как создатель или участник)
	MaxActiveProjects = 15
	// MaxProjectMembers максимум участников в проекте (без учета создателя)
	MaxProjectMembers = 100
	// MaxPhasesPerProject максимум фаз в проекте
	MaxPhasesPerProject = 20
)

// CloseReason представляет причину закрытия проекта
type CloseReason string

// Возможные причины закрытия
const (
	ReasonCompleted CloseReason = "completed"
	ReasonCancelled CloseReason = "cancelled"
)

// IsValid проверяет что причина закрытия допустима
func (r CloseReason) IsValid() bool {
	return r == ReasonCompleted || r == ReasonCancelled
}

// Project представляет проект
type Project struct {
	ProjectID   string      `json:"projectId"`
	CreatorID   string      `json:"creatorId"`
	CreatorName string      `json:"creatorName,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Closed      bool        `json:"closed"`
	Reason      CloseReason `json:"reason,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
}

// ProjectMembers представляет создателя и участников открытого проекта
type ProjectMembers struct {
	ProjectID string        `json:"projectId"`
	Creator   UserProfile   `json:"creator"`
	Members   []UserProfile `json:"members"`
}

// IsCreator проверяет что пользователь является создателем проекта
func (p *Project) IsCreator(userID string) bool {
	return p.CreatorID == userID
}
