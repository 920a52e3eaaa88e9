package service

import (
	"bytes"
	"fmt"
	"html/template"
)

// 邮件正文模板。主题单独拼接，正文统一走 html/template 渲染，
// 所有动态字段自动转义
var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "teacher_new_request"}}
<h2>New Exit Request</h2>
<p>Dear {{.TeacherName}},</p>
<p>A student from your department has submitted an exit request that needs your review.</p>
<ul>
  <li><b>Student:</b> {{.StudentName}} ({{.StudentID}})</li>
  <li><b>Course:</b> {{.Course}}</li>
  <li><b>Date:</b> {{.Date}} at {{.Time}}</li>
  <li><b>Reason:</b> {{.Reason}}</li>
  <li><b>Emergency Contact:</b> {{.EmergencyContact}}</li>
</ul>
<p>Please log in to the Smart Exit Monitoring System to approve or decline this request.</p>
{{end}}

{{define "admin_new_request"}}
<h2>New Exit Request - Admin Review Required</h2>
<p>Dear {{.AdminName}},</p>
<p>A new exit request has been submitted and requires administrative review.</p>
<ul>
  <li><b>Student:</b> {{.StudentName}} ({{.StudentID}})</li>
  <li><b>Course:</b> {{.Course}}</li>
  <li><b>Date:</b> {{.Date}} at {{.Time}}</li>
  <li><b>Reason:</b> {{.Reason}}</li>
</ul>
{{end}}

{{define "teacher_confirmation"}}
<h2>Exit Request {{.Decision}}</h2>
<p>Dear {{.TeacherName}},</p>
<p>This confirms that you have <b>{{.Decision}}</b> the exit request of
{{.StudentName}} ({{.StudentID}}).</p>
{{if .Response}}<p>Your response: {{.Response}}</p>{{end}}
{{end}}

{{define "security_alert"}}
<h2>SECURITY ALERT: Approved Exit Request</h2>
<p>The following exit request has been fully approved. The student is authorized to leave campus.</p>
<ul>
  <li><b>Student:</b> {{.StudentName}} ({{.StudentID}})</li>
  <li><b>Course:</b> {{.Course}}</li>
  <li><b>Date:</b> {{.Date}} at {{.Time}}</li>
  <li><b>Reason:</b> {{.Reason}}</li>
</ul>
<p>Please verify the student's identity at the gate.</p>
{{end}}

{{define "account_welcome"}}
<h2>Welcome to Smart Exit Monitoring System</h2>
<p>Dear {{.Name}},</p>
<p>Your {{.Role}} account has been created successfully.</p>
<ul>
  <li><b>Username:</b> {{.Username}}</li>
</ul>
<p>You can now log in to the system with your credentials.</p>
{{end}}

{{define "account_update"}}
<h2>Account Information Updated</h2>
<p>Dear {{.Name}},</p>
<p>The following fields of your account were updated:</p>
<ul>
{{range .UpdatedFields}}  <li>{{.}}</li>
{{end}}</ul>
<p>If you did not request this change, please contact the administrator immediately.</p>
{{end}}

{{define "password_reset"}}
<h2>Password Reset</h2>
<p>Dear {{.Name}},</p>
<p>Your password reset code is:</p>
<h1>{{.ResetCode}}</h1>
<p>The code expires in {{.ExpiryMinutes}} minutes. If you did not request a reset, ignore this email.</p>
{{end}}
`))

// renderMailBody 渲染指定模板；模板缺失或数据不匹配属编程错误
func renderMailBody(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板 %s 失败: %w", name, err)
	}
	return buf.String(), nil
}
