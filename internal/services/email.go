package services

import (
	"fmt"
	"strings"

	"github.com/prismhq/prism/internal/config"
	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/logger"
	"gopkg.in/gomail.v2"
)

// EmailService delivers meeting invitations over SMTP. Delivery is best
// effort: callers log failures and carry on.
type EmailService struct {
	cfg *config.SMTPConfig
}

func NewEmailService(cfg *config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendMeetingInvite sends one invitation to the accepted participants with
// agenda, time, duration, link and inviter name. A disabled or unconfigured
// mailer is a no-op.
func (s *EmailService) SendMeetingInvite(recipients []string, meeting *models.Meeting, inviter *models.User) error {
	if !s.cfg.Enabled || s.cfg.Host == "" {
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[Prism] Meeting: %s", meeting.Agenda)
	plain := s.buildPlainBody(meeting, inviter)
	html := s.buildHTMLBody(meeting, inviter)

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", html)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		logger.Warn().Err(err).Strs("recipients", recipients).Msg("failed to send meeting invitation")
		return err
	}

	logger.Infof("[Email] Sent meeting invitation to %v", recipients)
	return nil
}

func (s *EmailService) buildPlainBody(meeting *models.Meeting, inviter *models.User) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You have been invited to a meeting by %s.\n\n", inviter.FullName()))
	sb.WriteString(fmt.Sprintf("Agenda: %s\n", meeting.Agenda))
	sb.WriteString(fmt.Sprintf("Time: %s\n", meeting.StartTime.Format("Mon, 02 Jan 2006 15:04 MST")))
	sb.WriteString(fmt.Sprintf("Duration: %d minutes\n", meeting.DurationMins))
	if meeting.Link != "" {
		sb.WriteString(fmt.Sprintf("Link: %s\n", meeting.Link))
	}
	return sb.String()
}

func (s *EmailService) buildHTMLBody(meeting *models.Meeting, inviter *models.User) string {
	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif; background-color: #ffffff;\">")
	sb.WriteString("<h2>Meeting Invitation</h2>")
	sb.WriteString(fmt.Sprintf("<p>%s has invited you to a meeting.</p>", inviter.FullName()))
	sb.WriteString("<table style=\"border-collapse: collapse;\">")

	rows := []struct{ label, value string }{
		{"Agenda", meeting.Agenda},
		{"Time", meeting.StartTime.Format("Mon, 02 Jan 2006 15:04 MST")},
		{"Duration", fmt.Sprintf("%d minutes", meeting.DurationMins)},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td style=\"padding: 8px; border: 1px solid #ddd; font-weight: bold;\">%s</td><td style=\"padding: 8px; border: 1px solid #ddd;\">%s</td></tr>", r.label, r.value))
	}
	sb.WriteString("</table>")

	if meeting.Link != "" {
		sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Join the meeting</a></p>", meeting.Link))
	}
	sb.WriteString("</body></html>")
	return sb.String()
}
