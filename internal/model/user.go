package model

// ── 角色枚举 ──
//
// 角色是封闭集合：权限引擎按角色查规则表，新角色必须同步扩展规则表。

// Role 用户角色
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleUser    Role = "user" // 注册默认角色，无任何业务权限，等待管理员分配
)

// Valid 判断角色是否属于封闭集合
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleUser:
		return true
	}
	return false
}

// User 登录账号表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"username"`
	Email        string `gorm:"type:varchar(320);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Profile *Profile `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Profile 角色档案表 — 对应 profiles
// 每个账号至多一份档案；角色只能由管理员分配流程修改。
type Profile struct {
	ProfileID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	Role      Role   `gorm:"type:varchar(10);not null;default:'user'"       json:"role"`
	Phone     string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }
