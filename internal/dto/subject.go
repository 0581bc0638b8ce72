package dto

// ── 科目模块 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Code        string `json:"code"        binding:"required,max=50"`
	Credits     int    `json:"credits"     binding:"omitempty,min=1,max=10"`
	Description string `json:"description"`
}

// UpdateSubjectRequest 更新科目请求
type UpdateSubjectRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=100"`
	Credits     *int    `json:"credits"     binding:"omitempty,min=1,max=10"`
	Description *string `json:"description"`
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Credits     int    `json:"credits"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}
