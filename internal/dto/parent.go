package dto

// ── 家长模块 DTO ──

// CreateParentRequest 创建家长请求
type CreateParentRequest struct {
	ProfileID  *string `json:"profile_id" binding:"omitempty,uuid"`
	Name       string  `json:"name"       binding:"required,max=100"`
	Email      string  `json:"email"      binding:"omitempty,email"`
	Phone      string  `json:"phone"      binding:"required,max=20"`
	Relation   string  `json:"relation"   binding:"omitempty,max=50"`
	Occupation string  `json:"occupation" binding:"omitempty,max=100"`
	Address    string  `json:"address"`
}

// UpdateParentRequest 更新家长请求
type UpdateParentRequest struct {
	Name       *string `json:"name"       binding:"omitempty,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Phone      *string `json:"phone"      binding:"omitempty,max=20"`
	Relation   *string `json:"relation"   binding:"omitempty,max=50"`
	Occupation *string `json:"occupation" binding:"omitempty,max=100"`
	Address    *string `json:"address"`
}

// ParentResponse 家长响应
type ParentResponse struct {
	ID         string `json:"id"`
	ProfileID  string `json:"profile_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone"`
	Relation   string `json:"relation,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Address    string `json:"address,omitempty"`
	CreatedAt  string `json:"created_at"`
}
