package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Kyliee2004/sems-backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportNoRequests = errors.New("暂无可导出的离校申请")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRequests 导出全部离校申请为 Excel
	ExportRequests(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRequests — 导出离校申请历史为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet，一行一条申请，含双方审批结果

func (s *exportService) ExportRequests(ctx context.Context) (*bytes.Buffer, string, error) {
	requests, err := s.repo.ExitRequest.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(requests) == 0 {
		return nil, "", ErrExportNoRequests
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Exit Requests"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Student ID", "Student Name", "Course", "Year Level",
		"Reason", "Date", "Time", "Emergency Contact", "Guard",
		"Status", "Submitted At",
		"Admin Approved", "Admin Response",
		"Teacher Approved", "Teacher ID", "Teacher Response",
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"1", h)
		f.SetCellStyle(sheetName, col+"1", col+"1", headerStyle)
		f.SetColWidth(sheetName, col, col, 18)
	}

	for i := range requests {
		r := &requests[i]
		row := i + 2
		values := []interface{}{
			r.StudentID, r.StudentName(), r.Course, r.YearLevel,
			r.ReasonForExit, r.Date, r.Time, r.EmergencyContact, r.GuardName,
			r.Status, r.SubmittedAt.Format("2006-01-02 15:04:05"),
			yesNo(r.AdminApproval.Approved), r.AdminApproval.Response,
			yesNo(r.TeacherApproval.Approved), r.TeacherApproval.TeacherID, r.TeacherApproval.Response,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("exit-requests-%s.xlsx", time.Now().Format("20060102-150405"))
	s.logger.Info("申请历史已导出", zap.Int("count", len(requests)), zap.String("filename", filename))
	return &buf, filename, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
