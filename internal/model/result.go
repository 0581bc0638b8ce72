package model

// Result 成绩表 — 对应 results
// (student, subject, exam) 唯一
type Result struct {
	ResultID      string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"result_id"`
	StudentID     string   `gorm:"type:uuid;not null;uniqueIndex:uniq_result"     json:"student_id"`
	SubjectID     string   `gorm:"type:uuid;not null;uniqueIndex:uniq_result"     json:"subject_id"`
	ExamID        string   `gorm:"type:uuid;not null;uniqueIndex:uniq_result"     json:"exam_id"`
	MarksObtained *int     `json:"marks_obtained,omitempty"`
	TotalMarks    int      `gorm:"not null;default:100"                           json:"total_marks"`
	Percentage    *float64 `gorm:"type:numeric(5,2)"                              json:"percentage,omitempty"`
	Grade         string   `gorm:"type:varchar(5)"                                json:"grade,omitempty"` // A B C D F
	Remarks       string   `gorm:"type:text"                                      json:"remarks,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Exam    *Exam    `gorm:"foreignKey:ExamID;references:ExamID"       json:"exam,omitempty"`
}

// TableName 指定表名
func (Result) TableName() string { return "results" }
