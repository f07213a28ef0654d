package sms

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderer renders SMS bodies from named text templates
type Renderer struct {
	templates *template.Template
}

var smsBodies = map[string]string{
	"fabricator_registered": "Dear {{.Name}}, your registration is received. Registration no: {{.RegistrationNumber}}. We will notify you once it is reviewed.",
	"fabricator_status":     "Dear {{.Name}}, your registration {{.RegistrationNumber}} is now {{.Status}}.",
	"fabricator_assigned":   "Dear {{.FabricatorName}}, {{.RepName}} ({{.RepPhone}}) is now your marketing representative.",
	"rep_assigned":          "{{.FabricatorName}} ({{.RegistrationNumber}}, {{.FabricatorPhone}}) has been assigned to you.",
	"task_assigned":         "New task: {{.Description}}{{if .DueDate}} (due {{.DueDate}}){{end}}",
}

func NewRenderer() (*Renderer, error) {
	root := template.New("sms").Option("missingkey=zero")
	for name, body := range smsBodies {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parse sms template %s: %w", name, err)
		}
	}
	return &Renderer{templates: root}, nil
}

func (r *Renderer) Has(name string) bool {
	_, ok := smsBodies[name]
	return ok
}

func (r *Renderer) Render(name string, payload map[string]string) (string, error) {
	if !r.Has(name) {
		return "", fmt.Errorf("unknown sms template %q", name)
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, payload); err != nil {
		return "", err
	}
	return buf.String(), nil
}
