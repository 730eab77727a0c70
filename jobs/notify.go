package jobs

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/dalrrd-emc/emc"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// NotifyOrgAdmins is the handler behind
// notify_org_admins_of_dataset_management_request. It re-fetches the
// activity named by the single argument, resolves the dataset's
// owning organization's admins and mails each one.
func NotifyOrgAdmins(db *gorm.DB, mailer Mailer) Handler {
	return func(args ...string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		activityID := args[0]

		var act emc.Activity
		err := db.Where("id = ?", activityID).First(&act).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("activity %s not found", activityID)
		}
		if err != nil {
			return err
		}

		var pkg emc.Package
		if err := db.Where("id = ?", act.ObjectID).First(&pkg).Error; err != nil {
			return fmt.Errorf("dataset %s: %w", act.ObjectID, err)
		}
		if pkg.OwnerOrg == "" {
			return fmt.Errorf("dataset %s has no owning organization", pkg.ID)
		}

		var requester emc.User
		if err := db.Where("id = ?", act.UserID).First(&requester).Error; err != nil {
			return fmt.Errorf("user %s: %w", act.UserID, err)
		}

		var admins []emc.User
		err = db.
			Joins("JOIN members ON members.user_id = users.id").
			Where("members.group_id = ? AND members.capacity = ? AND members.state = ?",
				pkg.OwnerOrg, "admin", emc.StateActive).
			Where("users.state = ? AND users.email <> ''", emc.StateActive).
			Find(&admins).Error
		if err != nil {
			return err
		}
		if len(admins) == 0 {
			zap.S().Warnf("No admins with email found for org %s, dropping notification", pkg.OwnerOrg)
			return nil
		}

		subject, body := managementRequestMail(act.ActivityType, pkg, requester)
		for _, admin := range admins {
			if err := mailer.Send(admin.Email, subject, body); err != nil {
				return fmt.Errorf("mailing %s: %w", admin.Email, err)
			}
		}
		return nil
	}
}

func managementRequestMail(activityType string, pkg emc.Package, requester emc.User) (subject, body string) {
	var what string
	switch activityType {
	case emc.ActivityTypeRequestMaintenance:
		what = "maintenance"
	case emc.ActivityTypeRequestPublication:
		what = "publication"
	default:
		what = "management"
	}
	subject = fmt.Sprintf("Dataset %s request: %s", what, pkg.Title)
	body = fmt.Sprintf(
		"User %s has requested %s of the dataset %q (%s).\n\n"+
			"Please review the request on your organization dashboard.\n",
		requester.Name, what, pkg.Title, pkg.Name,
	)
	return subject, body
}
