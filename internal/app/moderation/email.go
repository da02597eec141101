package moderation

import (
	"github.com/ydpps/schoolcms/internal/app/system/mailer"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

type emailContent struct {
	Subject  string
	HTMLBody string
	TextBody string
}

func approvalEmail(settings models.SiteSettings, app *models.AdmissionApplication) emailContent {
	text, html := mailer.ApprovalEmail(mailer.ApprovalEmailData{
		SchoolName:  settings.SchoolName,
		ShortName:   settings.ShortName,
		StudentName: app.StudentName,
		Grade:       app.Grade,
	})
	return emailContent{
		Subject:  "Admission Approved - " + settings.SchoolName,
		HTMLBody: html,
		TextBody: text,
	}
}
