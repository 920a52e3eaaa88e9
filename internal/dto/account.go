package dto

// ── 账户模块 DTO ──

// CreateStudentRequest 创建学生账户
type CreateStudentRequest struct {
	StudentID     string `json:"studentID"     binding:"required,max=30"`
	FirstName     string `json:"firstName"     binding:"required,max=100"`
	MiddleName    string `json:"middleName"    binding:"omitempty,max=100"`
	LastName      string `json:"lastName"      binding:"required,max=100"`
	Course        string `json:"course"        binding:"required,max=50"`
	YearLevel     string `json:"yearLevel"     binding:"omitempty,max=30"`
	SpecificYear  string `json:"specificYear"  binding:"omitempty,max=30"`
	ContactNumber string `json:"contactNumber" binding:"omitempty,max=30"`
	Email         string `json:"email"         binding:"required,email"`
	Address       string `json:"address"       binding:"omitempty,max=255"`
	Username      string `json:"username"      binding:"required,max=100"`
	Password      string `json:"password"      binding:"required,min=6,max=100"`
}

// UpdateStudentRequest 更新学生账户
// course / yearLevel 不在可更新字段之列：部门路由键创建后不可变
type UpdateStudentRequest struct {
	FirstName     *string `json:"firstName"     binding:"omitempty,max=100"`
	MiddleName    *string `json:"middleName"    binding:"omitempty,max=100"`
	LastName      *string `json:"lastName"      binding:"omitempty,max=100"`
	SpecificYear  *string `json:"specificYear"  binding:"omitempty,max=30"`
	ContactNumber *string `json:"contactNumber" binding:"omitempty,max=30"`
	Email         *string `json:"email"         binding:"omitempty,email"`
	Address       *string `json:"address"       binding:"omitempty,max=255"`
	Username      *string `json:"username"      binding:"omitempty,max=100"`
	Password      *string `json:"password"      binding:"omitempty,min=6,max=100"`
}

// CreateTeacherRequest 创建教师账户
type CreateTeacherRequest struct {
	TeacherID     string `json:"teacherID"     binding:"required,max=30"`
	FirstName     string `json:"firstName"     binding:"required,max=100"`
	MiddleName    string `json:"middleName"    binding:"omitempty,max=100"`
	LastName      string `json:"lastName"      binding:"required,max=100"`
	Department    string `json:"department"    binding:"required,oneof=College Highschool"`
	Position      string `json:"position"      binding:"required,max=30"`
	ContactNumber string `json:"contactNumber" binding:"omitempty,max=30"`
	Email         string `json:"email"         binding:"required,email"`
	Address       string `json:"address"       binding:"omitempty,max=255"`
	Username      string `json:"username"      binding:"required,max=100"`
	Password      string `json:"password"      binding:"required,min=6,max=100"`
}

// UpdateTeacherRequest 更新教师账户
// department / position 不在可更新字段之列：部门路由键创建后不可变
type UpdateTeacherRequest struct {
	FirstName     *string `json:"firstName"     binding:"omitempty,max=100"`
	MiddleName    *string `json:"middleName"    binding:"omitempty,max=100"`
	LastName      *string `json:"lastName"      binding:"omitempty,max=100"`
	ContactNumber *string `json:"contactNumber" binding:"omitempty,max=30"`
	Email         *string `json:"email"         binding:"omitempty,email"`
	Address       *string `json:"address"       binding:"omitempty,max=255"`
	Username      *string `json:"username"      binding:"omitempty,max=100"`
	Password      *string `json:"password"      binding:"omitempty,min=6,max=100"`
}

// CreateAdminRequest 创建管理员账户
type CreateAdminRequest struct {
	AdminID        string `json:"adminID"        binding:"required,max=30"`
	FirstName      string `json:"firstName"      binding:"required,max=100"`
	MiddleName     string `json:"middleName"     binding:"omitempty,max=100"`
	LastName       string `json:"lastName"       binding:"required,max=100"`
	Email          string `json:"email"          binding:"required,email"`
	PreferredEmail string `json:"preferredEmail" binding:"omitempty,email"`
	ContactNumber  string `json:"contactNumber"  binding:"omitempty,max=30"`
	Address        string `json:"address"        binding:"omitempty,max=255"`
	Username       string `json:"username"       binding:"required,max=100"`
	Password       string `json:"password"       binding:"required,min=6,max=100"`
}

// UpdateAdminRequest 更新管理员账户
type UpdateAdminRequest struct {
	FirstName      *string `json:"firstName"      binding:"omitempty,max=100"`
	MiddleName     *string `json:"middleName"     binding:"omitempty,max=100"`
	LastName       *string `json:"lastName"       binding:"omitempty,max=100"`
	Email          *string `json:"email"          binding:"omitempty,email"`
	PreferredEmail *string `json:"preferredEmail" binding:"omitempty,email"`
	ContactNumber  *string `json:"contactNumber"  binding:"omitempty,max=30"`
	Address        *string `json:"address"        binding:"omitempty,max=255"`
	Username       *string `json:"username"       binding:"omitempty,max=100"`
	Password       *string `json:"password"       binding:"omitempty,min=6,max=100"`
}

// UploadPictureRequest 上传头像（data URL 或外链）
type UploadPictureRequest struct {
	ProfilePicture string `json:"profilePicture" binding:"required"`
}
