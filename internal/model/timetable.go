package model

// DayOfWeek 星期枚举（三字母缩写，与原始数据口径一致）
type DayOfWeek string

const (
	DayMon DayOfWeek = "mon"
	DayTue DayOfWeek = "tue"
	DayWed DayOfWeek = "wed"
	DayThu DayOfWeek = "thu"
	DayFri DayOfWeek = "fri"
	DaySat DayOfWeek = "sat"
	DaySun DayOfWeek = "sun"
)

// Valid 判断是否为合法星期值
func (d DayOfWeek) Valid() bool {
	switch d {
	case DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun:
		return true
	}
	return false
}

// Timetable 课表表 — 对应 timetables
// (course, day_of_week, start_time) 唯一：同一课程同一时段只能排一节课。
type Timetable struct {
	TimetableID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"timetable_id"`
	CourseID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_timetable"    json:"course_id"`
	DayOfWeek   DayOfWeek `gorm:"type:varchar(3);not null;uniqueIndex:uniq_timetable" json:"day_of_week"`
	StartTime   string    `gorm:"type:varchar(5);not null;uniqueIndex:uniq_timetable" json:"start_time"` // HH:MM
	EndTime     string    `gorm:"type:varchar(5);not null"                         json:"end_time"`
	SubjectID   string    `gorm:"type:uuid;not null"                               json:"subject_id"`
	TeacherID   string    `gorm:"type:uuid;not null"                               json:"teacher_id"`
	Room        string    `gorm:"type:varchar(50)"                                 json:"room,omitempty"`
	BaseModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Timetable) TableName() string { return "timetables" }
