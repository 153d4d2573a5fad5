// Package cron runs the nightly payroll check: overtime logged by a
// person without a rate on file carries a zero amount and needs
// manual follow-up before the month closes.
package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sfarfano/registro-horas/internal/payrates"
	"github.com/sfarfano/registro-horas/internal/timesheet/domain"
	"github.com/sfarfano/registro-horas/internal/timesheet/store"
)

type Scheduler struct {
	store store.Store
	rates payrates.Provider
	cron  *cron.Cron
}

func NewScheduler(st store.Store, rates payrates.Provider) *Scheduler {
	return &Scheduler{store: st, rates: rates}
}

// Start schedules the check nightly at 02:00.
func (s *Scheduler) Start() {
	c := cron.New()

	_, err := c.AddFunc("0 2 * * *", func() {
		s.RunPayrollCheck(context.Background())
	})
	if err != nil {
		log.Printf("Failed to create payroll check job: %v", err)
		return
	}

	log.Println("Cron scheduler started (payroll check nightly at 02:00)")
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunPayrollCheck scans the current month for overtime without a pay
// rate and logs each affected person once.
func (s *Scheduler) RunPayrollCheck(ctx context.Context) {
	now := time.Now().UTC()
	entries, err := s.store.Query(ctx, domain.Filter{Year: now.Year(), Month: now.Month()})
	if err != nil {
		log.Printf("[payroll-check] query failed: %v", err)
		return
	}

	flagged := make(map[string]float64)
	for _, e := range entries {
		if e.HourType != domain.HourTypeOvertime || e.AmountPayable != 0 {
			continue
		}
		if _, ok, err := s.rates.OvertimeRate(ctx, e.Person); err != nil {
			log.Printf("[payroll-check] rate lookup for %s failed: %v", e.Person, err)
			continue
		} else if !ok {
			flagged[e.Person] += e.Hours
		}
	}

	for person, hours := range flagged {
		log.Printf("[payroll-check] %s has %.1f overtime hours this month with no pay rate on file", person, hours)
	}
	if len(flagged) == 0 {
		log.Printf("[payroll-check] %d entries checked, nothing to flag", len(entries))
	}
}
