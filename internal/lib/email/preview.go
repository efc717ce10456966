package email

// PreviewData is sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateWelcome: map[string]string{
		"UserFirstName": "Jordan",
		"SiteURL":       "https://enthusiastauto.example",
	},
	TemplatePasswordReset: map[string]string{
		"UserFirstName": "Jordan",
		"ResetURL":      "https://enthusiastauto.example/auth/reset-password?token=preview",
		"ExpiresIn":     "1 hour",
	},
	TemplateServiceRequest: map[string]string{
		"UserFirstName": "Jordan",
		"ServiceType":   "inspection",
		"Vehicle":       "2004 BMW M3",
		"PreferredDate": "Jun 3, 2026",
		"Reference":     "SR-7F3A9C21",
	},
	TemplateSellSubmission: map[string]string{
		"UserFirstName": "Jordan",
		"Vehicle":       "2001 Porsche 911 Carrera",
		"Reference":     "SS-11B0D2E4",
	},
	TemplateStaffNotification: staffNotification{
		Heading: "New service request",
		Fields: []Field{
			{Label: "Name", Value: "Jordan Lee"},
			{Label: "Email", Value: "jordan@example.com"},
			{Label: "Vehicle", Value: "2004 BMW M3"},
			{Label: "Service", Value: "inspection"},
		},
	},
}
