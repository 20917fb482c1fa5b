package models

import "time"

const (
	PostCEO             = "CEO"
	PostManager         = "Manager"
	PostTeamLead        = "Team Lead"
	PostSeniorDeveloper = "Senior Developer"
	PostDeveloper       = "Developer"
)

// Positions lists the known titles from the most senior down.
var Positions = []string{PostCEO, PostManager, PostTeamLead, PostSeniorDeveloper, PostDeveloper}

type Employee struct {
	ID        int       `gorm:"primaryKey;size:32"`
	FullName  string    `gorm:"type:varchar(200);not null"`
	Post      string    `gorm:"type:varchar(200);not null"`
	HireDate  time.Time `gorm:"type:date;not null"`
	Salary    float64   `gorm:"type:decimal(10,2);not null"`
	ManagerID *int      `gorm:"size:32"`
	Manager   *Employee `gorm:"foreignKey:ManagerID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}
