// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
)

// ContactNotificationEmailData contains the data for the email sent to the
// workspace team when a visitor submits the contact form.
type ContactNotificationEmailData struct {
	SiteName  string
	Reference string
	Name      string
	Email     string
	Phone     string // optional
	Interest  string // optional, e.g. "Meeting room hire"
	Message   string
	SentAt    string // formatted timestamp
}

// ContactConfirmationEmailData contains the data for the acknowledgement
// email sent back to the visitor.
type ContactConfirmationEmailData struct {
	SiteName  string
	Reference string
	Name      string
	SiteURL   string
}

// ContactNotificationEmail generates both plain text and HTML versions of the
// enquiry notification sent to the workspace inbox.
func ContactNotificationEmail(data ContactNotificationEmailData) (textBody, htmlBody string) {
	// Plain text version
	textBody = "New enquiry via the " + data.SiteName + " contact form.\n\n" +
		"Reference: " + data.Reference + "\n" +
		"Name: " + data.Name + "\n" +
		"Email: " + data.Email + "\n"
	if data.Phone != "" {
		textBody += "Phone: " + data.Phone + "\n"
	}
	if data.Interest != "" {
		textBody += "Interested in: " + data.Interest + "\n"
	}
	textBody += "Received: " + data.SentAt + "\n\n" +
		"Message:\n" + data.Message + "\n\n" +
		"Reply directly to this email to reach the sender."

	// HTML version
	var buf bytes.Buffer
	contactNotificationHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// ContactConfirmationEmail generates both plain text and HTML versions of the
// acknowledgement sent to the visitor.
func ContactConfirmationEmail(data ContactConfirmationEmailData) (textBody, htmlBody string) {
	// Plain text version
	textBody = "Hello " + data.Name + ",\n\n" +
		"Thanks for getting in touch with " + data.SiteName + ". " +
		"We have received your enquiry and will reply within one working day.\n\n" +
		"Your reference: " + data.Reference + "\n\n" +
		"In the meantime, you can find opening hours, pricing and directions at:\n" +
		data.SiteURL + "\n\n" +
		"The " + data.SiteName + " team"

	// HTML version
	var buf bytes.Buffer
	contactConfirmationHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

var contactNotificationHTMLTmpl = template.Must(template.New("contact_notification").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New Enquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.SiteName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">New Enquiry</h2>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                A visitor has submitted the contact form. Reference <strong>{{.Reference}}</strong>.
              </p>
              <div style="padding: 16px; background-color: #f4f4f5; border-radius: 6px; margin-bottom: 24px;">
                <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                  <tr>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b;"><strong>Name:</strong></td>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b; text-align: right;">{{.Name}}</td>
                  </tr>
                  <tr>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b;"><strong>Email:</strong></td>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b; text-align: right;">{{.Email}}</td>
                  </tr>
                  {{if .Phone}}
                  <tr>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b;"><strong>Phone:</strong></td>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b; text-align: right;">{{.Phone}}</td>
                  </tr>
                  {{end}}
                  {{if .Interest}}
                  <tr>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b;"><strong>Interested in:</strong></td>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b; text-align: right;">{{.Interest}}</td>
                  </tr>
                  {{end}}
                  <tr>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b;"><strong>Received:</strong></td>
                    <td style="padding: 4px 0; font-size: 14px; color: #52525b; text-align: right;">{{.SentAt}}</td>
                  </tr>
                </table>
              </div>
              <div style="padding: 16px; background-color: #f0f9ff; border-radius: 6px; border-left: 4px solid #3b82f6; margin-bottom: 24px;">
                <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #1e3a5f; white-space: pre-wrap;">{{.Message}}</p>
              </div>
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                Reply directly to this email to reach the sender.
              </p>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #a1a1aa; text-align: center;">
                Sent by the {{.SiteName}} website contact form.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var contactConfirmationHTMLTmpl = template.Must(template.New("contact_confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>We Got Your Message</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.SiteName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">Thanks, {{.Name}}!</h2>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                We have received your enquiry and will reply within one working day.
              </p>
              <div style="padding: 16px; background-color: #f4f4f5; border-radius: 6px; margin-bottom: 24px; text-align: center;">
                <p style="margin: 0 0 4px 0; font-size: 12px; font-weight: 600; color: #71717a; text-transform: uppercase;">Your reference</p>
                <p style="margin: 0; font-size: 20px; font-weight: 700; letter-spacing: 2px; color: #18181b;">{{.Reference}}</p>
              </div>
              <!-- Button -->
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 0 0 24px 0;">
                    <a href="{{.SiteURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">Visit the Workspace</a>
                  </td>
                </tr>
              </table>
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                If you did not submit this enquiry, you can safely ignore this email.
              </p>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #a1a1aa; text-align: center;">
                {{.SiteName}} · Gold Hill, Shaftesbury, Dorset
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))
