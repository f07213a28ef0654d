package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

// AppName is shown in email headers and subjects
const AppName = "Xylem"

type mailTemplate struct {
	subject *texttemplate.Template
	body    *template.Template
}

// Renderer turns a template name plus payload into a subject and HTML body
type Renderer struct {
	templates map[string]mailTemplate
}

// NewRenderer parses the built-in email templates
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]mailTemplate, len(mailBodies))}
	for name, def := range mailBodies {
		subj, err := texttemplate.New(name + "_subject").Option("missingkey=zero").Parse(def.subject)
		if err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", name, err)
		}
		body, err := template.New(name).Option("missingkey=zero").Parse(layout)
		if err == nil {
			_, err = body.New("content").Parse(def.body)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s body: %w", name, err)
		}
		r.templates[name] = mailTemplate{subject: subj, body: body}
	}
	return r, nil
}

// Has reports whether an email template with the given name exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render executes the named template against payload
func (r *Renderer) Render(name string, payload map[string]string) (subject, html string, err error) {
	t, ok := r.templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	data := make(map[string]string, len(payload)+1)
	for k, v := range payload {
		data[k] = v
	}
	data["AppName"] = AppName

	var sb, hb bytes.Buffer
	if err := t.subject.Execute(&sb, data); err != nil {
		return "", "", err
	}
	if err := t.body.Execute(&hb, data); err != nil {
		return "", "", err
	}
	return sb.String(), hb.String(), nil
}

type mailDef struct {
	subject string
	body    string
}

var mailBodies = map[string]mailDef{
	"fabricator_status": {
		subject: "Fabricator {{.Name}} is now {{.Status}} - {{.AppName}}",
		body: `<p>Hello {{.RepName}},</p>
<p>The registration of <strong>{{.Name}}</strong> ({{.RegistrationNumber}}) has been marked <strong>{{.Status}}</strong>.</p>`,
	},
	"rep_assigned": {
		subject: "New fabricator assigned - {{.AppName}}",
		body: `<p>Hello {{.RepName}},</p>
<p><strong>{{.FabricatorName}}</strong> ({{.RegistrationNumber}}) has been assigned to you.</p>
<p>Phone: {{.FabricatorPhone}}<br>Institution: {{.Institution}}<br>District: {{.District}}, {{.SubDistrict}}</p>`,
	},
	"rep_credentials": {
		subject: "Your login credentials - {{.AppName}}",
		body: `<p>Hello {{.Name}},</p>
<p>An account has been created for you. Your employee id is <strong>{{.EmployeeID}}</strong>.</p>
<p>Username: <strong>{{.Username}}</strong><br>Password: <strong>{{.Password}}</strong></p>
<p>Please change your password after your first login.</p>`,
	},
	"report_submitted": {
		subject: "Sales report {{.InvoiceNumber}} submitted - {{.AppName}}",
		body: `<p>{{.RepName}} ({{.EmployeeID}}) submitted a sales report.</p>
<p>Fabricator: {{.FabricatorName}}<br>Distributor: {{.DistributorName}}<br>Invoice: {{.InvoiceNumber}}<br>Amount: {{.Amount}}<br>Sales date: {{.SalesDate}}</p>`,
	},
	"task_assigned": {
		subject: "New task assigned - {{.AppName}}",
		body: `<p>Hello {{.RepName}},</p>
<p>A new task has been assigned to you:</p>
<blockquote>{{.Description}}</blockquote>
{{if .DueDate}}<p>Due: {{.DueDate}}</p>{{end}}`,
	},
}

const layout = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
                    <tr>
                        <td style="background: #2f4858; padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 26px;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px; color: #4a5568; font-size: 16px; line-height: 1.6;">
                            {{template "content" .}}
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`
