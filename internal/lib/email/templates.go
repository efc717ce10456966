package email

import (
	"embed"
	"fmt"
	"html/template"
)

type Template string

const (
	TemplateWelcome           Template = "welcome"
	TemplatePasswordReset     Template = "password_reset"
	TemplateServiceRequest    Template = "service_request"
	TemplateSellSubmission    Template = "sell_submission"
	TemplateStaffNotification Template = "staff_notification"
)

// Templates lists every template the client can render.
var Templates = []Template{
	TemplateWelcome,
	TemplatePasswordReset,
	TemplateServiceRequest,
	TemplateSellSubmission,
	TemplateStaffNotification,
}

//go:embed templates/*.html
var templateFS embed.FS

// parseTemplates compiles each template together with the shared layout.
func parseTemplates() (map[Template]*template.Template, error) {
	parsed := make(map[Template]*template.Template, len(Templates))
	for _, name := range Templates {
		file := fmt.Sprintf("%s.html", name)
		tmpl, err := template.New(file).ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		parsed[name] = tmpl
	}
	return parsed, nil
}
