package model

import "time"

// Admin 管理员账户表 — 对应 admins
type Admin struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AdminID         string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"adminID"`
	FirstName       string     `gorm:"type:varchar(100);not null"                     json:"firstName"`
	MiddleName      string     `gorm:"type:varchar(100);not null;default:''"          json:"middleName"`
	LastName        string     `gorm:"type:varchar(100);not null"                     json:"lastName"`
	Email           string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PreferredEmail  string     `gorm:"type:varchar(255);not null;default:''"          json:"preferredEmail"`
	ContactNumber   string     `gorm:"type:varchar(30);not null;default:''"           json:"contactNumber"`
	Address         string     `gorm:"type:varchar(255);not null;default:''"          json:"address"`
	Username        string     `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash    string     `gorm:"type:varchar(255);not null"                     json:"-"`
	ProfilePicture  *string    `gorm:"type:text"                                      json:"profilePicture"`
	Role            string     `gorm:"type:varchar(20);not null;default:'admin'"      json:"role"`
	ResetCode       string     `gorm:"type:varchar(10)"                               json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName 指定表名
func (Admin) TableName() string { return "admins" }

// FullName 管理员姓名（名 + 姓）
func (a *Admin) FullName() string { return a.FirstName + " " + a.LastName }

// ResetEmail 密码重置邮件的目标地址：优先使用 preferredEmail
func (a *Admin) ResetEmail() string {
	if a.PreferredEmail != "" {
		return a.PreferredEmail
	}
	return a.Email
}
