package email

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Field is one labelled row in a staff notification.
type Field struct {
	Label string
	Value string
}

type staffNotification struct {
	Heading string
	Fields  []Field
}

func firstName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

func (c *Client) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return c.SendEmail(ctx, to, "Welcome to Enthusiast Auto", TemplateWelcome, map[string]string{
		"UserFirstName": firstName(name),
		"SiteURL":       c.siteURL,
	})
}

// SendPasswordResetEmail links to the storefront reset page with the raw
// token. The token only ever leaves the server in this email.
func (c *Client) SendPasswordResetEmail(ctx context.Context, to, name, token string, expiresIn time.Duration) error {
	return c.SendEmail(ctx, to, "Reset your Enthusiast Auto password", TemplatePasswordReset, map[string]string{
		"UserFirstName": firstName(name),
		"ResetURL":      c.link(fmt.Sprintf("/auth/reset-password?token=%s&email=%s", url.QueryEscape(token), url.QueryEscape(to))),
		"ExpiresIn":     humanizeDuration(expiresIn),
	})
}

func (c *Client) SendServiceRequestConfirmation(ctx context.Context, to, name, serviceType, vehicle, preferredDate, reference string) error {
	return c.SendEmail(ctx, to, "We received your service request", TemplateServiceRequest, map[string]string{
		"UserFirstName": firstName(name),
		"ServiceType":   serviceType,
		"Vehicle":       vehicle,
		"PreferredDate": preferredDate,
		"Reference":     reference,
	})
}

func (c *Client) SendSellSubmissionConfirmation(ctx context.Context, to, name, vehicle, reference string) error {
	return c.SendEmail(ctx, to, "We received your vehicle details", TemplateSellSubmission, map[string]string{
		"UserFirstName": firstName(name),
		"Vehicle":       vehicle,
		"Reference":     reference,
	})
}

func (c *Client) SendStaffNotification(ctx context.Context, to, subject string, fields []Field) error {
	return c.SendEmail(ctx, to, subject, TemplateStaffNotification, staffNotification{
		Heading: subject,
		Fields:  fields,
	})
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	case d >= time.Minute:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}
