// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
)

// ApprovalEmailData contains the data for an admission approval email.
type ApprovalEmailData struct {
	SchoolName  string
	ShortName   string
	StudentName string
	Grade       string
}

// ApprovalEmail generates both plain text and HTML versions of the admission
// approval notification sent to the applicant.
func ApprovalEmail(data ApprovalEmailData) (textBody, htmlBody string) {
	// Plain text version
	textBody = "Dear " + data.StudentName + ",\n\n" +
		"We are pleased to inform you that your admission application for " +
		data.Grade + " at " + data.SchoolName + " has been approved.\n\n" +
		"Please visit the school office to complete the remaining formalities.\n\n" +
		"Best Regards,\n" +
		data.ShortName + " Administration"

	// HTML version
	var buf bytes.Buffer
	approvalHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// ContactMessageEmailData contains the data for the new-enquiry notification
// sent to the school inbox when a visitor submits the contact form.
type ContactMessageEmailData struct {
	SchoolName string
	Name       string
	Email      string
	Phone      string
	Message    string
}

// ContactMessageEmail generates both plain text and HTML versions of the
// contact form notification.
func ContactMessageEmail(data ContactMessageEmailData) (textBody, htmlBody string) {
	// Plain text version
	textBody = "New enquiry received on the " + data.SchoolName + " website.\n\n" +
		"Name: " + data.Name + "\n" +
		"Email: " + data.Email + "\n" +
		"Phone: " + data.Phone + "\n\n" +
		data.Message

	// HTML version
	var buf bytes.Buffer
	contactHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

var approvalHTMLTmpl = template.Must(template.New("admission_approved").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Admission Approved</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.SchoolName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #ea580c;">Congratulations!</h2>
              <p style="margin: 0 0 16px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Dear {{.StudentName}},
              </p>
              <p style="margin: 0 0 16px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                We are pleased to inform you that your admission application for <strong>{{.Grade}}</strong> at {{.SchoolName}} has been approved.
              </p>
              <p style="margin: 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Please visit the school office to complete the remaining formalities.
              </p>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0 0 4px 0; font-size: 14px; color: #52525b;">Best Regards,</p>
              <p style="margin: 0; font-size: 14px; font-weight: 600; color: #18181b;">{{.ShortName}} Administration</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var contactHTMLTmpl = template.Must(template.New("contact_message").Parse(`<!DOCTYPE html>
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
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.SchoolName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">New Website Enquiry</h2>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size: 15px; color: #52525b;">
                <tr><td style="padding: 4px 0; width: 80px; font-weight: 600;">Name</td><td style="padding: 4px 0;">{{.Name}}</td></tr>
                <tr><td style="padding: 4px 0; font-weight: 600;">Email</td><td style="padding: 4px 0;">{{.Email}}</td></tr>
                <tr><td style="padding: 4px 0; font-weight: 600;">Phone</td><td style="padding: 4px 0;">{{.Phone}}</td></tr>
              </table>
              <p style="margin: 16px 0 0 0; font-size: 15px; line-height: 1.6; color: #52525b; white-space: pre-wrap;">{{.Message}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))
