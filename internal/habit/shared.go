package habit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/notification"
	"github.com/Salsabil-210/comhabits/internal/schedule"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// Share invites users to the caller's habit. Users already pending or
// accepted are skipped; users who rejected or left are invited again.
func (s *habitService) Share(ctx context.Context, id string, dto ShareDTO) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "share habit")
	if err != nil {
		return nil, err
	}
	if len(dto.ParticipantIDs) == 0 {
		return nil, ErrNoParticipants
	}

	h, err := s.loadOwned(ctx, log, id, userID)
	if err != nil {
		return nil, err
	}
	if h.IsCopy() {
		return nil, ErrNotShareable
	}
	for _, pid := range dto.ParticipantIDs {
		if pid == userID {
			return nil, ErrShareWithSelf
		}
	}

	var sent []*notification.Notification
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		sent = nil
		now := s.now()
		invited := make(map[uuid.UUID]bool, len(dto.ParticipantIDs))
		for _, pid := range dto.ParticipantIDs {
			if invited[pid] {
				continue
			}
			invited[pid] = true

			p, err := s.repo.FindParticipant(ctx, h.ID, pid)
			switch {
			case errors.Is(err, ErrParticipantNotFound):
				p = &Participant{ID: uuid.New(), HabitID: h.ID, UserID: pid}
			case err != nil:
				return err
			case p.Status == ParticipantPending || p.Status == ParticipantAccepted:
				continue
			}
			p.Status = ParticipantPending
			p.InvitedAt = now
			p.RespondedAt = nil
			p.LeftAt = nil
			if err := s.repo.SaveParticipant(ctx, p); err != nil {
				return err
			}

			n, err := s.notifier.Record(ctx, pid, notification.TypeSharedHabitInvite, map[string]any{
				"habitId": h.ID.String(),
				"name":    h.Name,
				"ownerId": h.OwnerID.String(),
			})
			if err != nil {
				return err
			}
			sent = append(sent, n)
		}

		h.Kind = KindShared
		if err := s.refreshSharedStatus(ctx, h); err != nil {
			return err
		}
		h.UpdatedAt = now
		return s.repo.Save(ctx, h)
	})
	if err != nil {
		log.WithError(err).Error("Failed to share habit")
		return nil, err
	}

	s.push(ctx, sent...)

	log.WithFields(logrus.Fields{
		"habit_id": h.ID,
		"invited":  len(sent),
	}).Info("Habit shared")
	return s.repo.FindByID(ctx, h.ID)
}

// refreshSharedStatus keeps a shared canonical habit pending until somebody
// has accepted it, and moves it out of pending once somebody has.
func (s *habitService) refreshSharedStatus(ctx context.Context, h *Habit) error {
	participants, err := s.repo.FindParticipants(ctx, h.ID)
	if err != nil {
		return err
	}
	accepted := false
	for _, p := range participants {
		if p.Status == ParticipantAccepted {
			accepted = true
			break
		}
	}
	switch {
	case !accepted && h.Status == StatusActive:
		h.Status = StatusPending
	case accepted && h.Status == StatusPending:
		h.Status = StatusActive
	}
	return nil
}

// Respond answers an invitation to the shared habit id. Accepting creates
// the caller's copy, activates the canonical habit and notifies the owner,
// all in one transaction. It returns the copy, or nil after a rejection.
func (s *habitService) Respond(ctx context.Context, id string, accept bool) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "respond to shared habit")
	if err != nil {
		return nil, err
	}
	habitID, err := parseUUID(log, id)
	if err != nil {
		return nil, err
	}

	var (
		copyHabit *Habit
		sent      *notification.Notification
	)
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		copyHabit, sent = nil, nil

		p, err := s.repo.FindParticipant(ctx, habitID, userID)
		if errors.Is(err, ErrParticipantNotFound) {
			return ErrHabitNotFound
		}
		if err != nil {
			return err
		}
		if p.Status != ParticipantPending {
			return ErrAlreadyResponded
		}

		canonical, err := s.repo.FindByID(ctx, habitID)
		if err != nil {
			return err
		}

		now := s.now()
		p.RespondedAt = &now
		typ := notification.TypeSharedHabitRejected
		if accept {
			c, err := newParticipantCopy(canonical, userID, s.today(), now)
			if err != nil {
				return err
			}
			if err := s.repo.Create(ctx, c); err != nil {
				return err
			}
			copyHabit = c
			p.Status = ParticipantAccepted
			p.CopyHabitID = &c.ID
			typ = notification.TypeSharedHabitAccepted
		} else {
			p.Status = ParticipantRejected
		}
		if err := s.repo.SaveParticipant(ctx, p); err != nil {
			return err
		}

		if err := s.refreshSharedStatus(ctx, canonical); err != nil {
			return err
		}
		canonical.UpdatedAt = now
		if err := s.repo.Save(ctx, canonical); err != nil {
			return err
		}

		sent, err = s.notifier.Record(ctx, canonical.OwnerID, typ, map[string]any{
			"habitId":       canonical.ID.String(),
			"name":          canonical.Name,
			"participantId": userID.String(),
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrHabitNotFound) && !errors.Is(err, ErrAlreadyResponded) {
			log.WithError(err).Error("Failed to respond to shared habit")
		}
		return nil, err
	}

	s.push(ctx, sent)

	log.WithFields(logrus.Fields{
		"habit_id": habitID,
		"accepted": accept,
	}).Info("Shared habit invitation answered")
	return copyHabit, nil
}

// newParticipantCopy clones the canonical schedule for participantID and
// regenerates it. The copy may start in the past when the owner's habit
// already has.
func newParticipantCopy(canonical *Habit, participantID uuid.UUID, today util.Date, now time.Time) (*Habit, error) {
	canonicalID := canonical.ID
	c := &Habit{
		ID:              uuid.New(),
		OwnerID:         participantID,
		CanonicalID:     &canonicalID,
		Name:            canonical.Name,
		Description:     canonical.Description,
		Kind:            KindShared,
		Status:          StatusActive,
		StartDate:       canonical.StartDate,
		EndDate:         canonical.EndDate,
		Repeat:          canonical.Repeat,
		RepeatDays:      append(datatypes.JSONSlice[string]{}, canonical.RepeatDays...),
		MonthlyDates:    append(datatypes.JSONSlice[int]{}, canonical.MonthlyDates...),
		Frequency:       canonical.Frequency,
		RepeatCount:     canonical.RepeatCount,
		ReminderOffsets: append(datatypes.JSONSlice[int]{}, canonical.ReminderOffsets...),
		CompletionDates: datatypes.JSONSlice[util.Date]{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := regenerate(config.Log, c, schedule.Validator{Today: today, AllowPast: true}); err != nil {
		return nil, err
	}
	return c, nil
}

// Leave takes the caller out of a shared habit. id may be the canonical
// habit or the caller's own copy of it.
func (s *habitService) Leave(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "leave shared habit")
	if err != nil {
		return err
	}
	habitID, err := parseUUID(log, id)
	if err != nil {
		return err
	}

	var sent *notification.Notification
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		sent = nil

		canonicalID := habitID
		if h, err := s.repo.FindByID(ctx, habitID); err == nil && h.OwnerID == userID && h.IsCopy() {
			canonicalID = *h.CanonicalID
		} else if err != nil && !errors.Is(err, ErrHabitNotFound) {
			return err
		}

		p, err := s.repo.FindParticipant(ctx, canonicalID, userID)
		if errors.Is(err, ErrParticipantNotFound) {
			return ErrHabitNotFound
		}
		if err != nil {
			return err
		}
		if p.Status != ParticipantAccepted {
			return ErrNotParticipating
		}

		now := s.now()
		if p.CopyHabitID != nil {
			if err := s.repo.Delete(ctx, *p.CopyHabitID); err != nil && !errors.Is(err, ErrHabitNotFound) {
				return err
			}
		}
		p.Status = ParticipantLeft
		p.LeftAt = &now
		if err := s.repo.SaveParticipant(ctx, p); err != nil {
			return err
		}

		canonical, err := s.repo.FindByID(ctx, canonicalID)
		if err != nil {
			return err
		}
		if err := s.refreshSharedStatus(ctx, canonical); err != nil {
			return err
		}
		canonical.UpdatedAt = now
		if err := s.repo.Save(ctx, canonical); err != nil {
			return err
		}

		sent, err = s.notifier.Record(ctx, canonical.OwnerID, notification.TypeSharedHabitLeft, map[string]any{
			"habitId":       canonical.ID.String(),
			"name":          canonical.Name,
			"participantId": userID.String(),
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrHabitNotFound) && !errors.Is(err, ErrNotParticipating) {
			log.WithError(err).Error("Failed to leave shared habit")
		}
		return err
	}

	s.push(ctx, sent)
	log.WithField("habit_id", habitID).Info("Left shared habit")
	return nil
}

// TrackParticipant records the caller's status for one day of the shared
// habit id. The owner and accepted participants may track.
func (s *habitService) TrackParticipant(ctx context.Context, id string, dto ParticipantTrackDTO) (*ParticipantCompletion, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "track shared habit")
	if err != nil {
		return nil, err
	}
	habitID, err := parseUUID(log, id)
	if err != nil {
		return nil, err
	}
	if !dto.Status.IsValid() {
		return nil, ErrInvalidCompletion
	}

	today := s.today()
	date := today
	if dto.Date != nil && !dto.Date.IsZero() {
		date = *dto.Date
	}
	if date.After(today) {
		return nil, ErrFutureDate
	}

	h, err := s.repo.FindByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h.Kind != KindShared || h.IsCopy() {
		return nil, ErrHabitNotFound
	}
	if h.OwnerID != userID {
		p, err := s.repo.FindParticipant(ctx, habitID, userID)
		if errors.Is(err, ErrParticipantNotFound) {
			return nil, ErrHabitNotFound
		}
		if err != nil {
			return nil, err
		}
		if p.Status != ParticipantAccepted {
			return nil, ErrNotParticipating
		}
	}

	c := &ParticipantCompletion{
		ID:        uuid.New(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      date,
		Status:    dto.Status,
		UpdatedAt: s.now(),
	}
	if err := s.repo.SaveParticipantCompletion(ctx, c); err != nil {
		log.WithError(err).Error("Failed to save participant completion")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"habit_id": habitID,
		"date":     date.String(),
		"status":   dto.Status,
	}).Info("Shared habit tracked")
	return c, nil
}

// Progress summarizes every participant's tracked days, keyed by user.
// The owner is listed as accepted.
func (s *habitService) Progress(ctx context.Context, id string) (map[uuid.UUID]ParticipantProgress, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get shared progress")
	if err != nil {
		return nil, err
	}
	habitID, err := parseUUID(log, id)
	if err != nil {
		return nil, err
	}

	h, err := s.repo.FindByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	participants, err := s.repo.FindParticipants(ctx, habitID)
	if err != nil {
		log.WithError(err).Error("Failed to load participants")
		return nil, err
	}

	progress := map[uuid.UUID]ParticipantProgress{
		h.OwnerID: {Status: ParticipantAccepted},
	}
	member := h.OwnerID == userID
	for _, p := range participants {
		if p.UserID == userID {
			member = true
		}
		progress[p.UserID] = ParticipantProgress{Status: p.Status}
	}
	if !member {
		return nil, ErrHabitNotFound
	}

	completions, err := s.repo.FindParticipantCompletions(ctx, habitID)
	if err != nil {
		log.WithError(err).Error("Failed to load participant completions")
		return nil, err
	}
	for _, c := range completions {
		pp, ok := progress[c.UserID]
		if !ok {
			continue
		}
		switch c.Status {
		case CompletionComplete:
			pp.Complete++
			if pp.LastCompleted == nil || c.Date.After(*pp.LastCompleted) {
				pp.LastCompleted = c.Date.Ptr()
			}
		case CompletionIncomplete:
			pp.Incomplete++
		case CompletionSkipped:
			pp.Skipped++
		}
		progress[c.UserID] = pp
	}
	return progress, nil
}

func (s *habitService) push(ctx context.Context, sent ...*notification.Notification) {
	if s.notifier == nil {
		return
	}
	for _, n := range sent {
		s.notifier.Push(ctx, n)
	}
}
