// Package email sends transactional email through Resend. Bodies are
// rendered from html/template files embedded in the binary.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// sender is the part of the Resend emails API the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	emails    sender
	from      string
	siteURL   string
	templates map[Template]*template.Template
	logger    *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	return newClient(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, cfg.Integration.EmailFrom, cfg.Integration.SiteURL, logger)
}

func newClient(emails sender, from, siteURL string, logger *zerolog.Logger) (*Client, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Client{
		emails:    emails,
		from:      from,
		siteURL:   siteURL,
		templates: templates,
		logger:    logger,
	}, nil
}

// Render executes a template with data and returns the HTML body.
func (c *Client) Render(templateName Template, data any) (string, error) {
	tmpl, ok := c.templates[templateName]
	if !ok {
		return "", errors.Errorf("unknown email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	resp, err := c.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	if resp != nil {
		c.logger.Debug().
			Str("email_id", resp.Id).
			Str("template", string(templateName)).
			Msg("email accepted by provider")
	}

	return nil
}

func (c *Client) link(path string) string {
	return fmt.Sprintf("%s%s", c.siteURL, path)
}
