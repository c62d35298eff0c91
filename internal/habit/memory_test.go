package habit

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/notification"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

func TestMain(m *testing.M) {
	util.SetLocation(time.UTC)
	os.Exit(m.Run())
}

var fixedNow = time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)

func day(s string) util.Date {
	d, err := util.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func days(values ...string) []util.Date {
	out := make([]util.Date, 0, len(values))
	for _, v := range values {
		out = append(out, day(v))
	}
	return out
}

func userContext(userID uuid.UUID) context.Context {
	return auth.WithClaims(context.Background(), &auth.UserClaims{UserID: userID.String(), Role: "user"})
}

type participantKey struct {
	habitID, userID uuid.UUID
}

type completionKey struct {
	habitID, userID uuid.UUID
	date            string
}

type memoryRepository struct {
	mu           sync.Mutex
	habits       map[uuid.UUID]*Habit
	deleted      map[uuid.UUID]bool
	participants map[participantKey]Participant
	completions  map[completionKey]ParticipantCompletion
	saveErr      error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		habits:       make(map[uuid.UUID]*Habit),
		deleted:      make(map[uuid.UUID]bool),
		participants: make(map[participantKey]Participant),
		completions:  make(map[completionKey]ParticipantCompletion),
	}
}

func cloneHabit(h *Habit) *Habit {
	c := *h
	c.RepeatDays = append(datatypes.JSONSlice[string](nil), h.RepeatDays...)
	c.MonthlyDates = append(datatypes.JSONSlice[int](nil), h.MonthlyDates...)
	c.ReminderOffsets = append(datatypes.JSONSlice[int](nil), h.ReminderOffsets...)
	c.RepeatDates = append(datatypes.JSONSlice[util.Date](nil), h.RepeatDates...)
	c.Reminders = append(datatypes.JSONSlice[util.Date](nil), h.Reminders...)
	c.CompletionDates = append(datatypes.JSONSlice[util.Date](nil), h.CompletionDates...)
	c.SharedWith = nil
	return &c
}

type memorySnapshot struct {
	habits       map[uuid.UUID]*Habit
	deleted      map[uuid.UUID]bool
	participants map[participantKey]Participant
	completions  map[completionKey]ParticipantCompletion
}

func (m *memoryRepository) snapshot() memorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memorySnapshot{
		habits:       make(map[uuid.UUID]*Habit, len(m.habits)),
		deleted:      make(map[uuid.UUID]bool, len(m.deleted)),
		participants: make(map[participantKey]Participant, len(m.participants)),
		completions:  make(map[completionKey]ParticipantCompletion, len(m.completions)),
	}
	for k, v := range m.habits {
		s.habits[k] = cloneHabit(v)
	}
	for k, v := range m.deleted {
		s.deleted[k] = v
	}
	for k, v := range m.participants {
		s.participants[k] = v
	}
	for k, v := range m.completions {
		s.completions[k] = v
	}
	return s
}

func (m *memoryRepository) restore(s memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.habits = s.habits
	m.deleted = s.deleted
	m.participants = s.participants
	m.completions = s.completions
}

func (m *memoryRepository) Create(_ context.Context, h *Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.habits[h.ID] = cloneHabit(h)
	return nil
}

func (m *memoryRepository) Save(_ context.Context, h *Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.habits[h.ID] = cloneHabit(h)
	return nil
}

func (m *memoryRepository) participantsOf(habitID uuid.UUID) []Participant {
	var out []Participant
	for k, p := range m.participants {
		if k.habitID == habitID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvitedAt.Before(out[j].InvitedAt) })
	return out
}

func (m *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok || m.deleted[id] {
		return nil, ErrHabitNotFound
	}
	c := cloneHabit(h)
	c.SharedWith = m.participantsOf(id)
	return c, nil
}

func (m *memoryRepository) live(ownerID uuid.UUID) []*Habit {
	var out []*Habit
	for id, h := range m.habits {
		if h.OwnerID == ownerID && !m.deleted[id] {
			out = append(out, cloneHabit(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (m *memoryRepository) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]*Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live(ownerID), nil
}

func (m *memoryRepository) FindInRange(_ context.Context, ownerID uuid.UUID, start, end util.Date) ([]*Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Habit
	for _, h := range m.live(ownerID) {
		if len(util.InRange(h.RepeatDates, start, end)) > 0 || len(util.InRange(h.CompletionDates, start, end)) > 0 {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindWithReminderOn(_ context.Context, d util.Date) ([]*Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Habit
	for id, h := range m.habits {
		if !m.deleted[id] && h.Status != StatusInactive && util.ContainsDate(h.Reminders, d) {
			out = append(out, cloneHabit(h))
		}
	}
	return out, nil
}

func (m *memoryRepository) CountByStatus(_ context.Context, ownerID uuid.UUID) (map[Status]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[Status]int64)
	for _, h := range m.live(ownerID) {
		counts[h.Status]++
	}
	return counts, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[id]; !ok || m.deleted[id] {
		return ErrHabitNotFound
	}
	m.deleted[id] = true
	return nil
}

func (m *memoryRepository) FindParticipant(_ context.Context, habitID, userID uuid.UUID) (*Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.participants[participantKey{habitID, userID}]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return &p, nil
}

func (m *memoryRepository) FindParticipants(_ context.Context, habitID uuid.UUID) ([]Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.participantsOf(habitID), nil
}

func (m *memoryRepository) SaveParticipant(_ context.Context, p *Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants[participantKey{p.HabitID, p.UserID}] = *p
	return nil
}

func (m *memoryRepository) SaveParticipantCompletion(_ context.Context, c *ParticipantCompletion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := completionKey{c.HabitID, c.UserID, c.Date.String()}
	if existing, ok := m.completions[key]; ok {
		c.ID = existing.ID
	}
	m.completions[key] = *c
	return nil
}

func (m *memoryRepository) FindParticipantCompletions(_ context.Context, habitID uuid.UUID) ([]ParticipantCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ParticipantCompletion
	for k, c := range m.completions {
		if k.habitID == habitID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

var errNotifierDown = errors.New("notification store unavailable")

type fakeNotifier struct {
	mu       sync.Mutex
	recorded []*notification.Notification
	pushed   []*notification.Notification
	failOn   notification.Type
}

func (f *fakeNotifier) Record(_ context.Context, recipientID uuid.UUID, typ notification.Type, payload map[string]any) (*notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && f.failOn == typ {
		return nil, errNotifierDown
	}
	n := &notification.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        typ,
		Payload:     datatypes.NewJSONType(payload),
	}
	f.recorded = append(f.recorded, n)
	return n, nil
}

func (f *fakeNotifier) Push(_ context.Context, n *notification.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n != nil {
		f.pushed = append(f.pushed, n)
	}
}

func (f *fakeNotifier) ofType(typ notification.Type) []*notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.Notification
	for _, n := range f.recorded {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// memoryTx gives the fakes all-or-nothing semantics.
type memoryTx struct {
	repo     *memoryRepository
	notifier *fakeNotifier
}

func (t *memoryTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.repo.snapshot()
	t.notifier.mu.Lock()
	recorded := len(t.notifier.recorded)
	t.notifier.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.repo.restore(snap)
		t.notifier.mu.Lock()
		t.notifier.recorded = t.notifier.recorded[:recorded]
		t.notifier.mu.Unlock()
		return err
	}
	return nil
}

type fixture struct {
	repo     *memoryRepository
	notifier *fakeNotifier
	service  HabitService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemoryRepository()
	notifier := &fakeNotifier{}
	svc := NewService(repo, &memoryTx{repo: repo, notifier: notifier}, notifier, nil, WithClock(func() time.Time { return fixedNow }))
	return &fixture{repo: repo, notifier: notifier, service: svc}
}

// seed stores h as-is, bypassing validation.
func (f *fixture) seed(h *Habit) *Habit {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Status == "" {
		h.Status = StatusActive
	}
	if h.Kind == "" {
		h.Kind = KindPersonal
	}
	_ = f.repo.Create(context.Background(), h)
	return h
}
