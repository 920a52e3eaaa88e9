package model

import "time"

// Student 学生账户表 — 对应 students
// course/yearLevel 是部门路由的依据，创建后禁止通过更新接口修改
type Student struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID       string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"studentID"`
	FirstName       string     `gorm:"type:varchar(100);not null"                     json:"firstName"`
	MiddleName      string     `gorm:"type:varchar(100);not null;default:''"          json:"middleName"`
	LastName        string     `gorm:"type:varchar(100);not null"                     json:"lastName"`
	Course          string     `gorm:"type:varchar(50);not null"                      json:"course"`
	YearLevel       string     `gorm:"type:varchar(30);not null;default:''"           json:"yearLevel"`
	SpecificYear    string     `gorm:"type:varchar(30);not null;default:''"           json:"specificYear"`
	ContactNumber   string     `gorm:"type:varchar(30);not null;default:''"           json:"contactNumber"`
	Email           string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Address         string     `gorm:"type:varchar(255);not null;default:''"          json:"address"`
	Username        string     `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash    string     `gorm:"type:varchar(255);not null"                     json:"-"`
	ProfilePicture  *string    `gorm:"type:text"                                      json:"profilePicture"`
	ResetCode       string     `gorm:"type:varchar(10)"                               json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// FullName 学生姓名（名 + 姓）
func (s *Student) FullName() string { return s.FirstName + " " + s.LastName }
