package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
// profile_id 对应的档案角色必须已是 student。
type CreateStudentRequest struct {
	ProfileID     string  `json:"profile_id"     binding:"required,uuid"`
	StudentNo     string  `json:"student_no"     binding:"required,max=50"`
	RollNumber    string  `json:"roll_number"    binding:"required,max=20"`
	CourseID      string  `json:"course_id"      binding:"required,uuid"`
	Gender        string  `json:"gender"         binding:"required,oneof=male female other"`
	DateOfBirth   string  `json:"date_of_birth"  binding:"omitempty,datetime=2006-01-02"`
	Address       string  `json:"address"`
	City          string  `json:"city"           binding:"omitempty,max=50"`
	State         string  `json:"state"          binding:"omitempty,max=50"`
	PinCode       string  `json:"pin_code"       binding:"omitempty,max=10"`
	ParentID      *string `json:"parent_id"      binding:"omitempty,uuid"`
	AdmissionDate string  `json:"admission_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	CourseID *string `json:"course_id" binding:"omitempty,uuid"`
	Address  *string `json:"address"`
	City     *string `json:"city"      binding:"omitempty,max=50"`
	State    *string `json:"state"     binding:"omitempty,max=50"`
	PinCode  *string `json:"pin_code"  binding:"omitempty,max=10"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
	Status   *string `json:"status"    binding:"omitempty,oneof=active inactive graduated dropped"`
}

// StudentResponse 学生响应
type StudentResponse struct {
	ID            string `json:"id"`
	ProfileID     string `json:"profile_id"`
	Username      string `json:"username,omitempty"`
	StudentNo     string `json:"student_no"`
	RollNumber    string `json:"roll_number"`
	CourseID      string `json:"course_id"`
	CourseName    string `json:"course_name,omitempty"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PinCode       string `json:"pin_code,omitempty"`
	ParentID      string `json:"parent_id,omitempty"`
	ParentName    string `json:"parent_name,omitempty"`
	AdmissionDate string `json:"admission_date,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}
