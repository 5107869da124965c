package services

import (
	"fmt"
	"log"
	"time"

	"clearview-backend/config"
	"clearview-backend/models"
	"clearview-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notifier texts customers the day before a scheduled visit.
type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewNotifier(db *gorm.DB, cfg *config.Config) *Notifier {
	return &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFromNumber,
	}
}

// StartScheduler sends reminders daily at 5 PM for the following day's visits.
func (n *Notifier) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 17 * * *", n.SendVisitReminders)

	c.Start()
	log.Println("Visit reminder scheduler started")
}

// SendVisitReminders texts every customer with a scheduled job tomorrow.
// Send failures are logged per customer and never touch scheduling state.
func (n *Notifier) SendVisitReminders() {
	log.Println("Starting visit reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	var jobs []models.Job
	if err := n.db.Preload("Customer").
		Where("status = ? AND scheduled_date BETWEEN ? AND ?",
			models.JobStatusScheduled,
			utils.BeginningOfDay(tomorrow), utils.EndOfDay(tomorrow)).
		Find(&jobs).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's jobs: %v", err)
		return
	}

	for _, job := range jobs {
		if job.Customer == nil || job.Customer.Phone == "" {
			continue
		}

		timeSlot := job.ScheduledTime
		if timeSlot == "" {
			timeSlot = DefaultVisitTime
		}
		message := fmt.Sprintf("Hi %s, your window clean is booked for tomorrow at %s. Reply to this number if you need to rearrange.",
			job.Customer.FirstName, timeSlot)

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(job.Customer.Phone)
		params.SetFrom(n.from)
		params.SetBody(message)

		resp, err := n.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", job.Customer.Phone, err)
			continue
		}
		if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", job.Customer.Phone, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", job.Customer.Phone)
		}
	}

	log.Println("Visit reminder processing completed")
}
