// Package templates renders the HTML bodies for MedLove reminder emails.
package templates

import (
	"fmt"
	"html"
)

// RenderMedicationReminderEmail generates the branded HTML for a primary
// medication reminder. All user-controlled values are HTML-escaped.
func RenderMedicationReminderEmail(userName, medicationName, dosage, scheduledTime, medicationID, appBaseURL string) string {
	safeName := html.EscapeString(userName)
	safeMed := html.EscapeString(medicationName)
	safeDosage := html.EscapeString(dosage)
	safeTime := html.EscapeString(scheduledTime)
	link := fmt.Sprintf("%s?markTaken=%s", appBaseURL, medicationID)

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #f24ff0, #ff6b6b); padding: 30px; border-radius: 15px; text-align: center; color: white; margin-bottom: 20px;">
    <h1 style="margin: 0; font-size: 28px;">💊 Medication Reminder</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9;">Hi %s! It's time to take your medication</p>
  </div>

  <div style="background: #f8f9fa; padding: 25px; border-radius: 15px; margin-bottom: 20px;">
    <h2 style="color: #333; margin-top: 0;">%s</h2>
    <p style="color: #666; font-size: 18px; margin: 10px 0;">
      <strong>Dosage:</strong> %s
    </p>
    <p style="color: #666; font-size: 18px; margin: 10px 0;">
      <strong>Scheduled Time:</strong> %s
    </p>
  </div>

  <div style="text-align: center; margin: 30px 0;">
    <a href="%s"
       style="background: linear-gradient(135deg, #f24ff0, #ff6b6b); color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block;">
      ✅ Mark as Taken
    </a>
  </div>

  <div style="background: #e3f2fd; padding: 20px; border-radius: 10px; margin-top: 20px;">
    <p style="color: #1976d2; margin: 0; text-align: center; font-size: 14px;">
      💕 Remember: Taking your medication on time helps you stay healthy and strong!
    </p>
  </div>

  <div style="text-align: center; margin-top: 30px; color: #999; font-size: 12px;">
    <p>This reminder was sent by MedLove - Your caring medication companion</p>
    <p>If you've already taken this medication, please click "Mark as Taken" above</p>
  </div>
</div>`, safeName, safeMed, safeDosage, safeTime, link)
}

// RenderFollowUpReminderEmail generates the HTML for follow-up attempt number
// attempt (2-based: the first follow-up is attempt 2).
func RenderFollowUpReminderEmail(userName, medicationName, dosage, scheduledTime, medicationID, appBaseURL string, attempt int) string {
	safeName := html.EscapeString(userName)
	safeMed := html.EscapeString(medicationName)
	safeDosage := html.EscapeString(dosage)
	safeTime := html.EscapeString(scheduledTime)
	link := fmt.Sprintf("%s?markTaken=%s", appBaseURL, medicationID)
	ord := ordinalSuffix(attempt)

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #ff9500, #ff6b6b); padding: 30px; border-radius: 15px; text-align: center; color: white; margin-bottom: 20px;">
    <h1 style="margin: 0; font-size: 28px;">⏰ Gentle Reminder</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9;">Hi %s! Just checking in about your medication</p>
  </div>

  <div style="background: #fff3cd; padding: 25px; border-radius: 15px; margin-bottom: 20px; border-left: 4px solid #ffc107;">
    <h2 style="color: #856404; margin-top: 0;">%s</h2>
    <p style="color: #856404; font-size: 18px; margin: 10px 0;">
      <strong>Dosage:</strong> %s
    </p>
    <p style="color: #856404; font-size: 18px; margin: 10px 0;">
      <strong>Scheduled Time:</strong> %s
    </p>
    <p style="color: #856404; font-size: 16px; margin: 10px 0;">
      <strong>This is your %d%s reminder</strong>
    </p>
  </div>

  <div style="text-align: center; margin: 30px 0;">
    <a href="%s"
       style="background: linear-gradient(135deg, #ff9500, #ff6b6b); color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block;">
      ✅ Mark as Taken
    </a>
  </div>

  <div style="background: #fff3cd; padding: 20px; border-radius: 10px; margin-top: 20px;">
    <p style="color: #856404; margin: 0; text-align: center; font-size: 14px;">
      💕 No worries if you're running late! Your health journey is important to us.
    </p>
  </div>

  <div style="text-align: center; margin-top: 30px; color: #999; font-size: 12px;">
    <p>This follow-up reminder was sent by MedLove</p>
    <p>If you've already taken this medication, please click "Mark as Taken" above</p>
  </div>
</div>`, safeName, safeMed, safeDosage, safeTime, attempt, ord, link)
}

func ordinalSuffix(n int) string {
	switch n {
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
