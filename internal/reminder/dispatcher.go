package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/habit"
	"github.com/Salsabil-210/comhabits/internal/notification"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// HabitFinder is the habit query the dispatcher needs.
type HabitFinder interface {
	FindWithReminderOn(ctx context.Context, day util.Date) ([]*habit.Habit, error)
}

type Notifier interface {
	Notify(ctx context.Context, recipientID uuid.UUID, typ notification.Type, payload map[string]any) error
}

// Dispatcher sends habit_reminder notifications for every habit whose
// reminder list contains today. It only reads the stored reminders.
type Dispatcher struct {
	habits   HabitFinder
	notifier Notifier
	cron     *cron.Cron
	now      func() time.Time
}

func NewDispatcher(habits HabitFinder, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		habits:   habits,
		notifier: notifier,
		cron:     cron.New(cron.WithLocation(util.Location())),
		now:      time.Now,
	}
}

// Start schedules Run on spec, a standard five-field cron expression.
func (d *Dispatcher) Start(ctx context.Context, spec string) error {
	_, err := d.cron.AddFunc(spec, func() {
		if _, err := d.Run(ctx); err != nil {
			config.Log.WithError(err).Error("Reminder dispatch failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	d.cron.Start()
	config.Log.WithField("schedule", spec).Info("Reminder dispatcher started")
	return nil
}

// Stop waits for a running dispatch to finish.
func (d *Dispatcher) Stop() {
	<-d.cron.Stop().Done()
}

// Run dispatches today's reminders and returns how many were sent.
func (d *Dispatcher) Run(ctx context.Context) (int, error) {
	today := util.Today(d.now())
	log := config.WithContext(ctx).WithField("date", today.String())

	habits, err := d.habits.FindWithReminderOn(ctx, today)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, h := range habits {
		next := nextOccurrence(h.RepeatDates, today)
		payload := map[string]any{
			"habitId": h.ID.String(),
			"name":    h.Name,
		}
		if next != nil {
			payload["occursOn"] = next.String()
		}
		if err := d.notifier.Notify(ctx, h.OwnerID, notification.TypeHabitReminder, payload); err != nil {
			log.WithError(err).WithField("habit_id", h.ID).Warn("Failed to send habit reminder")
			continue
		}
		sent++
	}

	log.WithFields(logrus.Fields{
		"candidates": len(habits),
		"sent":       sent,
	}).Info("Habit reminders dispatched")
	return sent, nil
}

func nextOccurrence(dates []util.Date, from util.Date) *util.Date {
	for _, d := range util.SortedUnique(dates) {
		if !d.Before(from) {
			return d.Ptr()
		}
	}
	return nil
}
