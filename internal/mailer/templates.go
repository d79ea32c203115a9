package mailer

var bodyTemplates = map[string]string{
	TemplateRegistration: `
<html><body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #333;">Registration Received</h2>
	<p>Hello {{.StudentName}},</p>
	<p>Thank you for registering for the {{.RegistrationType}} programme. Your application
	has been received and is awaiting review.</p>
	<p>We will contact you at this address once your registration is approved.</p>
	<p>Best regards,<br>The EduPath Team</p>
</body></html>`,

	TemplateStudentApprove: `
<html><body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #333;">Registration Approved</h2>
	<p>Hello {{.StudentName}},</p>
	<p>Your {{.RegistrationType}} registration has been approved. Use the credentials below
	to log in to the student portal:</p>
	<p>Student ID: <strong>{{.StudentID}}</strong><br>
	Password: <strong>{{.Password}}</strong></p>
	<p>Please change your password after your first login.</p>
	<p>Best regards,<br>The EduPath Team</p>
</body></html>`,

	TemplateAdminWelcome: `
<html><body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #333;">Admin Account Created</h2>
	<p>Hello {{.Name}},</p>
	<p>An administrator account has been created for you.</p>
	<p>Username: <strong>{{.Username}}</strong><br>
	Password: <strong>{{.Password}}</strong></p>
	<p>Please change your password after your first login.</p>
	<p>Best regards,<br>The EduPath Team</p>
</body></html>`,
}
