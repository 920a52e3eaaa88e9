package model

import "testing"

func TestClassifyRequest(t *testing.T) {
	tests := []struct {
		name      string
		course    string
		yearLevel string
		wantDept  Department
		wantPos   string
		wantOK    bool
	}{
		{"大学课程 BSIT", "BSIT", "3rd Year", DepartmentCollege, "BSIT", true},
		{"大学课程 EDUC", "EDUC", "", DepartmentCollege, "EDUC", true},
		{"高中 strand STEM", "STEM", "Highschool", DepartmentHighschool, "STEM", true},
		{"高中 strand ABM", "ABM", "Highschool", DepartmentHighschool, "ABM", true},
		{"按年级兜底 Grade 11", "Unknown Course", "Grade 11", DepartmentHighschool, "Grade 11", true},
		{"course 优先于年级", "TVL", "Grade 12", DepartmentHighschool, "TVL", true},
		{"未知 course 且无年级", "BS-ARCH", "3rd Year", "", "", false},
		{"空输入", "", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := ClassifyRequest(tt.course, tt.yearLevel)
			if ok != tt.wantOK {
				t.Fatalf("期望 ok=%v，实际=%v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if key.Department != tt.wantDept {
				t.Errorf("期望 Department=%s，实际=%s", tt.wantDept, key.Department)
			}
			if key.Position != tt.wantPos {
				t.Errorf("期望 Position=%s，实际=%s", tt.wantPos, key.Position)
			}
		})
	}
}

func TestNormalizeCourse(t *testing.T) {
	if got := NormalizeCourse("  bsit "); got != "BSIT" {
		t.Errorf("期望 BSIT，实际=%s", got)
	}
	if got := NormalizeCourse("Stem"); got != "STEM" {
		t.Errorf("期望 STEM，实际=%s", got)
	}
	if NormalizeCourse("") != "" {
		t.Error("空字符串应保持为空")
	}
}

func TestParseDepartment(t *testing.T) {
	if _, ok := ParseDepartment("College"); !ok {
		t.Error("College 应为合法院系")
	}
	if _, ok := ParseDepartment(" Highschool "); !ok {
		t.Error("应容忍首尾空白")
	}
	if _, ok := ParseDepartment("Elementary"); ok {
		t.Error("未知院系应返回 false")
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusAdminApproved, StatusTeacherApproved} {
		if IsTerminalStatus(s) {
			t.Errorf("%s 不应为终态", s)
		}
	}
	for _, s := range []string{StatusFullyApproved, StatusDeclined} {
		if !IsTerminalStatus(s) {
			t.Errorf("%s 应为终态", s)
		}
	}
}
