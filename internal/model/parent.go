package model

// Parent 家长表 — 对应 parents
// 家长可以没有登录档案（仅作为联系信息存在）。
type Parent struct {
	ParentID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"parent_id"`
	ProfileID  *string `gorm:"type:uuid;uniqueIndex"                          json:"profile_id,omitempty"`
	Name       string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email      string  `gorm:"type:varchar(320)"                              json:"email,omitempty"`
	Phone      string  `gorm:"type:varchar(20);not null"                      json:"phone"`
	Relation   string  `gorm:"type:varchar(50)"                               json:"relation,omitempty"` // Father | Mother | Guardian
	Occupation string  `gorm:"type:varchar(100)"                              json:"occupation,omitempty"`
	Address    string  `gorm:"type:text"                                      json:"address,omitempty"`
	BaseModel

	// 关联
	Profile *Profile `gorm:"foreignKey:ProfileID;references:ProfileID" json:"profile,omitempty"`
}

// TableName 指定表名
func (Parent) TableName() string { return "parents" }
