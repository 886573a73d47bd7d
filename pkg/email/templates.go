package email

import (
	"bytes"
	"fmt"
	"html/template"

	"go-website-backend/pkg/sanitize"
)

// Templates only ever receive template.HTML values produced by the sanitize
// package, so html/template passes them through without a second escape.

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>New Contact Form Submission</h2>
        <p><span class="label">Name:</span> {{.Name}}</p>
        <p><span class="label">Email:</span> {{.Email}}</p>
        <p><span class="label">Subject:</span> {{.Subject}}</p>
        <p class="label">Message:</p>
        <div class="message-box">{{.Message}}</div>
    </div>
</body>
</html>`

const contactAutoReplyTemplate = `<h2>Thank you for your message!</h2>
<p>Hi {{.Name}},</p>
<p>We've received your message and will get back to you within 24 business hours.</p>
<p>Best regards,<br>The Team</p>`

const newsletterNotificationTemplate = `<h2>New Newsletter Subscription</h2>
<p><strong>Email:</strong> {{.Email}}</p>
<p>A new user has subscribed to the newsletter.</p>`

const newsletterWelcomeTemplate = `<h2>Welcome to our newsletter!</h2>
<p>Thank you for subscribing to our newsletter. You'll receive updates about our latest content and news.</p>
<p>Best regards,<br>The Team</p>`

var (
	contactNotificationTmpl    = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))
	contactAutoReplyTmpl       = template.Must(template.New("contact_auto_reply").Parse(contactAutoReplyTemplate))
	newsletterNotificationTmpl = template.Must(template.New("newsletter_notification").Parse(newsletterNotificationTemplate))
	newsletterWelcomeTmpl      = template.Must(template.New("newsletter_welcome").Parse(newsletterWelcomeTemplate))
)

// ContactEmailData holds the raw, untrusted contact form values
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

type escapedFields struct {
	Name    template.HTML
	Email   template.HTML
	Subject template.HTML
	Message template.HTML
}

func escaped(s string) template.HTML {
	return template.HTML(sanitize.EscapeHTML(s))
}

// RenderContactNotification builds the site-owner notification body.
func RenderContactNotification(data ContactEmailData) (string, error) {
	return render(contactNotificationTmpl, escapedFields{
		Name:    escaped(data.SenderName),
		Email:   escaped(data.SenderEmail),
		Subject: escaped(data.Subject),
		Message: template.HTML(sanitize.TextToHTML(data.Message)),
	})
}

// RenderContactAutoReply builds the acknowledgement sent to the submitter.
func RenderContactAutoReply(name string) (string, error) {
	return render(contactAutoReplyTmpl, escapedFields{Name: escaped(name)})
}

func RenderNewsletterNotification(subscriber string) (string, error) {
	return render(newsletterNotificationTmpl, escapedFields{Email: escaped(subscriber)})
}

func RenderNewsletterWelcome() (string, error) {
	return render(newsletterWelcomeTmpl, escapedFields{})
}

func render(tmpl *template.Template, data escapedFields) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template %s: %w", tmpl.Name(), err)
	}
	return body.String(), nil
}
