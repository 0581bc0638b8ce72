package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sms-portal/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("范围内无学生可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 学生名册导出为 Excel (.xlsx)
//   - 行范围复用权限引擎的 StudentListScope：管理员导出全量，
//     班主任只能导出自己课程下的学生
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRoster 导出学生名册为 Excel
	ExportRoster(ctx context.Context, callerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, authz: authz, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRoster — 导出学生名册为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "学生名册"
//   - 列：学籍号 | 学号 | 姓名 | 课程 | 性别 | 状态 | 家长 | 入学日期
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportRoster(ctx context.Context, callerID string) (*bytes.Buffer, string, error) {
	// 1. 权限：与学生列表同一行过滤规则
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionList, ""); err != nil {
		return nil, "", err
	}
	scope, err := s.authz.StudentListScope(ctx, callerID)
	if err != nil {
		return nil, "", err
	}
	// 导出是批量动作，限定管理员和班主任范围
	if !scope.All && scope.ClassTeacherID == "" {
		return nil, "", ErrNotAuthorized
	}

	// 2. 查询范围内全部学生（一次取满，导出不分页）
	students, total, err := s.repo.Student.List(ctx, scope, 0, 10000)
	if err != nil {
		s.logger.Error("查询学生名册失败", zap.Error(err))
		return nil, "", err
	}
	if total == 0 {
		return nil, "", ErrExportNoStudents
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学生名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "B", 16)
	f.SetColWidth(sheetName, "C", "D", 20)
	f.SetColWidth(sheetName, "E", "F", 10)
	f.SetColWidth(sheetName, "G", "H", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"学籍号", "学号", "姓名", "课程", "性别", "状态", "家长", "入学日期"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	row := 2
	for i := range students {
		st := &students[i]

		name := ""
		if st.Profile != nil && st.Profile.User != nil {
			name = st.Profile.User.Username
		}
		courseName := ""
		if st.Course != nil {
			courseName = st.Course.Name
		}
		parentName := ""
		if st.Parent != nil {
			parentName = st.Parent.Name
		}
		admission := ""
		if st.AdmissionDate != nil {
			admission = st.AdmissionDate.Format("2006-01-02")
		}

		f.SetCellValue(sheetName, cell("A", row), st.StudentNo)
		f.SetCellValue(sheetName, cell("B", row), st.RollNumber)
		f.SetCellValue(sheetName, cell("C", row), name)
		f.SetCellValue(sheetName, cell("D", row), courseName)
		f.SetCellValue(sheetName, cell("E", row), string(st.Gender))
		f.SetCellValue(sheetName, cell("F", row), string(st.Status))
		f.SetCellValue(sheetName, cell("G", row), parentName)
		f.SetCellValue(sheetName, cell("H", row), admission)
		row++
	}

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学生名册_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
