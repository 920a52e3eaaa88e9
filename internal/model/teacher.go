package model

import "time"

// Teacher 教师账户表 — 对应 teachers
// department 取值见 Department；position 为负责的课程/strand/年级代码，
// 与学生的 course 共同构成部门路由键，创建后禁止通过更新接口修改
type Teacher struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeacherID       string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"teacherID"`
	FirstName       string     `gorm:"type:varchar(100);not null"                     json:"firstName"`
	MiddleName      string     `gorm:"type:varchar(100);not null;default:''"          json:"middleName"`
	LastName        string     `gorm:"type:varchar(100);not null"                     json:"lastName"`
	Department      string     `gorm:"type:varchar(30);not null;index:idx_teachers_department_position" json:"department"`
	Position        string     `gorm:"type:varchar(30);not null;index:idx_teachers_department_position" json:"position"`
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
func (Teacher) TableName() string { return "teachers" }

// FullName 教师姓名（名 + 姓）
func (t *Teacher) FullName() string { return t.FirstName + " " + t.LastName }
