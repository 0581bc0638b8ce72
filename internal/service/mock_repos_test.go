package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	if profile.ProfileID == "" {
		profile.ProfileID = "profile-" + profile.UserID
	}
	m.profiles[profile.ProfileID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.Profile) error {
	m.profiles[profile.ProfileID] = profile
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses        map[string]*model.Course
	courseSubjects map[string]*model.CourseSubject
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses:        make(map[string]*model.Course),
		courseSubjects: make(map[string]*model.CourseSubject),
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range m.courses {
		if c.Code == course.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Code
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) ListByClassTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.ClassTeacherID != nil && *c.ClassTeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) AddSubject(_ context.Context, cs *model.CourseSubject) error {
	key := cs.CourseID + "/" + cs.SubjectID
	if _, ok := m.courseSubjects[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if cs.CourseSubjectID == "" {
		cs.CourseSubjectID = "cs-" + key
	}
	m.courseSubjects[key] = cs
	return nil
}

func (m *mockCourseRepo) ListSubjects(_ context.Context, courseID string) ([]model.CourseSubject, error) {
	var result []model.CourseSubject
	for _, cs := range m.courseSubjects {
		if cs.CourseID == courseID {
			result = append(result, *cs)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) RemoveSubject(_ context.Context, courseID, subjectID string) error {
	delete(m.courseSubjects, courseID+"/"+subjectID)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	for _, s := range m.subjects {
		if s.Code == subject.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if subject.SubjectID == "" {
		subject.SubjectID = "subject-" + subject.Code
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.subjects)), nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers        map[string]*model.Teacher
	teacherSubjects map[string]*model.TeacherSubject
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{
		teachers:        make(map[string]*model.Teacher),
		teacherSubjects: make(map[string]*model.TeacherSubject),
	}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	for _, t := range m.teachers {
		if t.EmployeeID == teacher.EmployeeID || t.ProfileID == teacher.ProfileID {
			return gorm.ErrDuplicatedKey
		}
	}
	if teacher.TeacherID == "" {
		teacher.TeacherID = "teacher-" + teacher.EmployeeID
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByProfileID(_ context.Context, profileID string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.ProfileID == profileID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.EmployeeID == employeeID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

func (m *mockTeacherRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.teachers)), nil
}

func (m *mockTeacherRepo) AddSubject(_ context.Context, ts *model.TeacherSubject) error {
	key := ts.TeacherID + "/" + ts.SubjectID + "/" + ts.CourseID
	if _, ok := m.teacherSubjects[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if ts.TeacherSubjectID == "" {
		ts.TeacherSubjectID = "ts-" + key
	}
	m.teacherSubjects[key] = ts
	return nil
}

func (m *mockTeacherRepo) ListSubjects(_ context.Context, teacherID string) ([]model.TeacherSubject, error) {
	var result []model.TeacherSubject
	for _, ts := range m.teacherSubjects {
		if ts.TeacherID == teacherID {
			result = append(result, *ts)
		}
	}
	return result, nil
}

func (m *mockTeacherRepo) RemoveSubject(_ context.Context, teacherID, subjectID, courseID string) error {
	delete(m.teacherSubjects, teacherID+"/"+subjectID+"/"+courseID)
	return nil
}

// ── Mock ParentRepository ──

type mockParentRepo struct {
	parents map[string]*model.Parent
}

func newMockParentRepo() *mockParentRepo {
	return &mockParentRepo{parents: make(map[string]*model.Parent)}
}

func (m *mockParentRepo) Create(_ context.Context, parent *model.Parent) error {
	if parent.ProfileID != nil {
		for _, p := range m.parents {
			if p.ProfileID != nil && *p.ProfileID == *parent.ProfileID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if parent.ParentID == "" {
		parent.ParentID = fmt.Sprintf("parent-%d", len(m.parents)+1)
	}
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) GetByID(_ context.Context, id string) (*model.Parent, error) {
	if p, ok := m.parents[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) GetByProfileID(_ context.Context, profileID string) (*model.Parent, error) {
	for _, p := range m.parents {
		if p.ProfileID != nil && *p.ProfileID == profileID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) List(_ context.Context) ([]model.Parent, error) {
	var result []model.Parent
	for _, p := range m.parents {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockParentRepo) Update(_ context.Context, parent *model.Parent) error {
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) Delete(_ context.Context, id string) error {
	delete(m.parents, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	// courseTeachers 按班主任过滤时用：course_id -> class_teacher_id
	courseTeachers map[string]string
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		students:       make(map[string]*model.Student),
		courseTeachers: make(map[string]string),
	}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, s := range m.students {
		if s.StudentNo == student.StudentNo || s.RollNumber == student.RollNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		student.StudentID = "student-" + student.StudentNo
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByProfileID(_ context.Context, profileID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.ProfileID == profileID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, scope *repository.StudentScope, offset, limit int) ([]model.Student, int64, error) {
	if scope == nil || scope.Empty() {
		return nil, 0, nil
	}
	var result []model.Student
	for _, s := range m.students {
		switch {
		case scope.All:
		case scope.ClassTeacherID != "":
			if m.courseTeachers[s.CourseID] != scope.ClassTeacherID {
				continue
			}
		case scope.StudentID != "":
			if s.StudentID != scope.StudentID {
				continue
			}
		case scope.ParentID != "":
			if s.ParentID == nil || *s.ParentID != scope.ParentID {
				continue
			}
		}
		result = append(result, *s)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockStudentRepo) ListByParent(_ context.Context, parentID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.ParentID != nil && *s.ParentID == parentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

func (m *mockStudentRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, s := range m.students {
		if s.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockStudentRepo) CountByGender(_ context.Context, gender model.Gender) (int64, error) {
	var count int64
	for _, s := range m.students {
		if s.Gender == gender {
			count++
		}
	}
	return count, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.Attendance
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func attendanceKey(studentID, subjectID string, date time.Time) string {
	return studentID + "/" + subjectID + "/" + date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.Attendance) error {
	for _, r := range m.records {
		if attendanceKey(r.StudentID, r.SubjectID, r.AttendanceDate) ==
			attendanceKey(record.StudentID, record.SubjectID, record.AttendanceDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	if record.AttendanceID == "" {
		record.AttendanceID = fmt.Sprintf("att-%d", len(m.records)+1)
	}
	m.records[record.AttendanceID] = record
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.Attendance, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string, offset, limit int) ([]model.Attendance, int64, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockAttendanceRepo) ListBySubjectAndDate(_ context.Context, subjectID string, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.SubjectID == subjectID && r.AttendanceDate.Equal(date) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.Attendance) error {
	m.records[record.AttendanceID] = record
	return nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockAttendanceRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.records)), nil
}

func (m *mockAttendanceRepo) CountByStudent(_ context.Context, studentID string) (int64, int64, error) {
	var total, present int64
	for _, r := range m.records {
		if r.StudentID != studentID {
			continue
		}
		total++
		if r.Status == model.AttendancePresent {
			present++
		}
	}
	return total, present, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	submissions map[string]*model.AssignmentSubmission
	// courseSubjects 作业经 course_subjects 关联课程：subject_id -> course_id
	courseSubjects map[string]string
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments:    make(map[string]*model.Assignment),
		submissions:    make(map[string]*model.AssignmentSubmission),
		courseSubjects: make(map[string]string),
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = fmt.Sprintf("assign-%d", len(m.assignments)+1)
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context, offset, limit int) ([]model.Assignment, int64, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockAssignmentRepo) ListBySubject(_ context.Context, subjectID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.SubjectID == subjectID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListUpcomingByCourse(_ context.Context, courseID string, after time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if m.courseSubjects[a.SubjectID] == courseID && a.DueDate.After(after) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) CreateSubmission(_ context.Context, sub *model.AssignmentSubmission) error {
	for _, s := range m.submissions {
		if s.AssignmentID == sub.AssignmentID && s.StudentID == sub.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if sub.SubmissionID == "" {
		sub.SubmissionID = fmt.Sprintf("sub-%d", len(m.submissions)+1)
	}
	m.submissions[sub.SubmissionID] = sub
	return nil
}

func (m *mockAssignmentRepo) GetSubmission(_ context.Context, id string) (*model.AssignmentSubmission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListSubmissions(_ context.Context, assignmentID string) ([]model.AssignmentSubmission, error) {
	var result []model.AssignmentSubmission
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListSubmissionsByStudent(_ context.Context, studentID string) ([]model.AssignmentSubmission, error) {
	var result []model.AssignmentSubmission
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) UpdateSubmission(_ context.Context, sub *model.AssignmentSubmission) error {
	m.submissions[sub.SubmissionID] = sub
	return nil
}

func (m *mockAssignmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.assignments)), nil
}

func (m *mockAssignmentRepo) CountPendingByTeacher(_ context.Context, teacherID string) (int64, error) {
	pending := make(map[string]bool)
	for _, s := range m.submissions {
		if s.Status != model.SubmissionPending {
			continue
		}
		if a, ok := m.assignments[s.AssignmentID]; ok && a.TeacherID == teacherID {
			pending[s.AssignmentID] = true
		}
	}
	return int64(len(pending)), nil
}

func (m *mockAssignmentRepo) CountPendingByStudent(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, s := range m.submissions {
		if s.StudentID == studentID && s.Status == model.SubmissionPending {
			count++
		}
	}
	return count, nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	exams map[string]*model.Exam
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{exams: make(map[string]*model.Exam)}
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	if exam.ExamID == "" {
		exam.ExamID = fmt.Sprintf("exam-%d", len(m.exams)+1)
	}
	m.exams[exam.ExamID] = exam
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) List(_ context.Context, offset, limit int) ([]model.Exam, int64, error) {
	var result []model.Exam
	for _, e := range m.exams {
		result = append(result, *e)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockExamRepo) ListByCourse(_ context.Context, courseID string) ([]model.Exam, error) {
	var result []model.Exam
	for _, e := range m.exams {
		if e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockExamRepo) ListUpcomingByCourse(_ context.Context, courseID string, after time.Time) ([]model.Exam, error) {
	var result []model.Exam
	for _, e := range m.exams {
		if e.CourseID == courseID && e.ExamDate.After(after) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockExamRepo) Update(_ context.Context, exam *model.Exam) error {
	m.exams[exam.ExamID] = exam
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string) error {
	delete(m.exams, id)
	return nil
}

// ── Mock ResultRepository ──

type mockResultRepo struct {
	results map[string]*model.Result
	// subjectNames 充当 subjects 表（subject_id -> name）：聚合以它为主表
	subjectNames map[string]string
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{
		results:      make(map[string]*model.Result),
		subjectNames: make(map[string]string),
	}
}

func (m *mockResultRepo) Create(_ context.Context, result *model.Result) error {
	for _, r := range m.results {
		if r.StudentID == result.StudentID && r.SubjectID == result.SubjectID && r.ExamID == result.ExamID {
			return gorm.ErrDuplicatedKey
		}
	}
	if result.ResultID == "" {
		result.ResultID = fmt.Sprintf("result-%d", len(m.results)+1)
	}
	m.results[result.ResultID] = result
	return nil
}

func (m *mockResultRepo) GetByID(_ context.Context, id string) (*model.Result, error) {
	if r, ok := m.results[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResultRepo) List(_ context.Context, offset, limit int) ([]model.Result, int64, error) {
	var result []model.Result
	for _, r := range m.results {
		result = append(result, *r)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockResultRepo) ListByStudent(_ context.Context, studentID string) ([]model.Result, error) {
	var result []model.Result
	for _, r := range m.results {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockResultRepo) ListByExam(_ context.Context, examID string) ([]model.Result, error) {
	var result []model.Result
	for _, r := range m.results {
		if r.ExamID == examID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockResultRepo) Update(_ context.Context, result *model.Result) error {
	m.results[result.ResultID] = result
	return nil
}

func (m *mockResultRepo) Delete(_ context.Context, id string) error {
	delete(m.results, id)
	return nil
}

func (m *mockResultRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.results)), nil
}

func (m *mockResultRepo) AvgMarksByStudent(_ context.Context, studentID string) (float64, bool, error) {
	var sum, count float64
	for _, r := range m.results {
		if r.StudentID == studentID && r.MarksObtained != nil {
			sum += float64(*r.MarksObtained)
			count++
		}
	}
	if count == 0 {
		return 0, false, nil
	}
	return sum / count, true, nil
}

func (m *mockResultRepo) CountPassFail(_ context.Context, threshold float64) (int64, int64, error) {
	var pass, fail int64
	for _, r := range m.results {
		if r.Percentage == nil {
			continue
		}
		if *r.Percentage >= threshold {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail, nil
}

// AvgPercentageBySubject 以 subjectNames 为主表遍历：
// 无成绩的科目同样出现，平均值为 0。
func (m *mockResultRepo) AvgPercentageBySubject(_ context.Context) ([]repository.SubjectAverage, error) {
	sums := make(map[string]float64)
	counts := make(map[string]float64)
	for _, r := range m.results {
		if r.Percentage == nil {
			continue
		}
		sums[r.SubjectID] += *r.Percentage
		counts[r.SubjectID]++
	}
	var result []repository.SubjectAverage
	for id, name := range m.subjectNames {
		avg := 0.0
		if counts[id] > 0 {
			avg = sums[id] / counts[id]
		}
		result = append(result, repository.SubjectAverage{
			SubjectID:   id,
			SubjectName: name,
			AvgPercent:  avg,
		})
	}
	return result, nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries map[string]*model.Timetable
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{entries: make(map[string]*model.Timetable)}
}

func (m *mockTimetableRepo) Create(_ context.Context, entry *model.Timetable) error {
	for _, e := range m.entries {
		if e.CourseID == entry.CourseID && e.DayOfWeek == entry.DayOfWeek && e.StartTime == entry.StartTime {
			return gorm.ErrDuplicatedKey
		}
	}
	if entry.TimetableID == "" {
		entry.TimetableID = fmt.Sprintf("tt-%d", len(m.entries)+1)
	}
	m.entries[entry.TimetableID] = entry
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByCourse(_ context.Context, courseID string) ([]model.Timetable, error) {
	var result []model.Timetable
	for _, e := range m.entries {
		if e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Timetable, error) {
	var result []model.Timetable
	for _, e := range m.entries {
		if e.TeacherID == teacherID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) Update(_ context.Context, entry *model.Timetable) error {
	m.entries[entry.TimetableID] = entry
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// ── 测试仓储聚合 ──

// testRepos 持有各 mock 实例，测试用例可直接塞数据
type testRepos struct {
	user       *mockUserRepo
	profile    *mockProfileRepo
	course     *mockCourseRepo
	subject    *mockSubjectRepo
	teacher    *mockTeacherRepo
	parent     *mockParentRepo
	student    *mockStudentRepo
	attendance *mockAttendanceRepo
	assignment *mockAssignmentRepo
	exam       *mockExamRepo
	result     *mockResultRepo
	timetable  *mockTimetableRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	tr := &testRepos{
		user:       newMockUserRepo(),
		profile:    newMockProfileRepo(),
		course:     newMockCourseRepo(),
		subject:    newMockSubjectRepo(),
		teacher:    newMockTeacherRepo(),
		parent:     newMockParentRepo(),
		student:    newMockStudentRepo(),
		attendance: newMockAttendanceRepo(),
		assignment: newMockAssignmentRepo(),
		exam:       newMockExamRepo(),
		result:     newMockResultRepo(),
		timetable:  newMockTimetableRepo(),
	}
	repo := &repository.Repository{
		User:       tr.user,
		Profile:    tr.profile,
		Course:     tr.course,
		Subject:    tr.subject,
		Teacher:    tr.teacher,
		Parent:     tr.parent,
		Student:    tr.student,
		Attendance: tr.attendance,
		Assignment: tr.assignment,
		Exam:       tr.exam,
		Result:     tr.result,
		Timetable:  tr.timetable,
	}
	return repo, tr
}

// seedActor 写入一个账号+档案，返回 user_id
func (tr *testRepos) seedActor(userID string, role model.Role) string {
	tr.user.users[userID] = &model.User{
		UserID:   userID,
		Username: userID,
		IsActive: true,
	}
	tr.profile.profiles["profile-"+userID] = &model.Profile{
		ProfileID: "profile-" + userID,
		UserID:    userID,
		Role:      role,
	}
	return userID
}
