package reminder

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/bill"
	"github.com/finbook/finbook/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scanner walks every user's unpaid bills and surfaces the ones due within
// the reminder window. The HTTP bills endpoint computes the same set on
// demand; the scanner exists so reminders show up in the logs once a day
// without anyone opening the app.
type Scanner struct {
	users user.Service
	bills bill.Repo
	clock utils.Clock
}

func NewScanner(users user.Service, bills bill.Repo, clock utils.Clock) *Scanner {
	return &Scanner{users: users, bills: bills, clock: clock}
}

// ScanOnce runs a single pass and returns the number of upcoming bills found.
func (s *Scanner) ScanOnce(ctx context.Context) (int, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	today := utils.DateOf(s.clock.Now())
	found := 0
	for _, u := range users {
		bills, err := s.bills.GetAll(ctx, u.Id)
		if err != nil {
			log.Errorf("reminder scan skipped user %s: %v", u.Username, err)
			continue
		}
		for _, b := range bills {
			if b.IsPaid {
				continue
			}
			due := bill.NextDue(b.AnchorDate, b.Period, today)
			if bill.IsUpcoming(due, today) {
				log.Infof("reminder: %s has %q (%.2f) due %s", u.Username, b.BillType, b.Amount, due.Format("2006-01-02"))
				found++
			}
		}
	}
	return found, nil
}

// Schedule registers the scan on the given cron schedule and starts the cron
// runner. Returns a stop function.
func (s *Scanner) Schedule(schedule string) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		count, err := s.ScanOnce(context.Background())
		if err != nil {
			log.Errorf("reminder scan failed: %v", err)
			return
		}
		log.Infof("reminder scan complete: %d upcoming bill(s)", count)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	c.Start()
	return func() { c.Stop() }, nil
}
