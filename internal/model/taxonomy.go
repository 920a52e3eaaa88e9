package model

import "strings"

// Department 院系大类（教师归属，闭合枚举）
type Department string

const (
	DepartmentCollege    Department = "College"
	DepartmentHighschool Department = "Highschool"
)

// YearLevelHighschool 高中学生在 yearLevel 字段上的标记值
const YearLevelHighschool = "Highschool"

// ParseDepartment 解析院系大类；未知取值返回 false
func ParseDepartment(s string) (Department, bool) {
	switch Department(strings.TrimSpace(s)) {
	case DepartmentCollege:
		return DepartmentCollege, true
	case DepartmentHighschool:
		return DepartmentHighschool, true
	}
	return "", false
}

// 路由键取值全集。course/position 的自由文本匹配是历史漏洞来源，
// 这里收敛为闭合集合，未知取值一律视为“无匹配教师”。
var (
	collegeCourses    = map[string]bool{"BSIT": true, "BSHM": true, "ENTREP": true, "EDUC": true}
	highschoolStrands = map[string]bool{"STEM": true, "HUMSS": true, "TVL": true, "ABM": true}
	highschoolGrades  = map[string]bool{"Grade 11": true, "Grade 12": true}
)

// IsCollegeCourse 是否为已知大学课程代码
func IsCollegeCourse(code string) bool { return collegeCourses[code] }

// IsHighschoolStrand 是否为已知高中 strand 代码
func IsHighschoolStrand(code string) bool { return highschoolStrands[code] }

// IsHighschoolGrade 是否为已知高中年级
func IsHighschoolGrade(s string) bool { return highschoolGrades[s] }

// RoutingKey 部门路由键：决定一条离校申请应通知哪些教师
type RoutingKey struct {
	Department Department
	Position   string
}

// ClassifyRequest 将申请的 course/yearLevel 归类为路由键
// 优先匹配 course（大学课程或高中 strand），其次按 yearLevel 匹配年级；
// 均不匹配时返回 false，调用方不发送教师通知（并非错误）
func ClassifyRequest(course, yearLevel string) (RoutingKey, bool) {
	switch {
	case IsCollegeCourse(course):
		return RoutingKey{Department: DepartmentCollege, Position: course}, true
	case IsHighschoolStrand(course):
		return RoutingKey{Department: DepartmentHighschool, Position: course}, true
	case IsHighschoolGrade(yearLevel):
		return RoutingKey{Department: DepartmentHighschool, Position: yearLevel}, true
	}
	return RoutingKey{}, false
}

// NormalizeCourse 规整 course 字符串用于比较
// 历史数据存在大小写与空白不一致，比较前统一 trim + 大写
func NormalizeCourse(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
