package habit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Salsabil-210/comhabits/internal/config"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type HabitRepository interface {
	Create(ctx context.Context, h *Habit) error
	Save(ctx context.Context, h *Habit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Habit, error)
	FindInRange(ctx context.Context, ownerID uuid.UUID, start, end util.Date) ([]*Habit, error)
	FindWithReminderOn(ctx context.Context, day util.Date) ([]*Habit, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[Status]int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	FindParticipant(ctx context.Context, habitID, userID uuid.UUID) (*Participant, error)
	FindParticipants(ctx context.Context, habitID uuid.UUID) ([]Participant, error)
	SaveParticipant(ctx context.Context, p *Participant) error
	SaveParticipantCompletion(ctx context.Context, c *ParticipantCompletion) error
	FindParticipantCompletions(ctx context.Context, habitID uuid.UUID) ([]ParticipantCompletion, error)
}

type habitRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) conn(ctx context.Context) *gorm.DB {
	return config.DBFromContext(ctx, r.db)
}

func (r *habitRepository) Create(ctx context.Context, h *Habit) error {
	return r.conn(ctx).Omit(clause.Associations).Create(h).Error
}

func (r *habitRepository) Save(ctx context.Context, h *Habit) error {
	return r.conn(ctx).Omit(clause.Associations).Save(h).Error
}

func (r *habitRepository) FindByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	var h Habit
	err := r.conn(ctx).Preload("SharedWith").First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *habitRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Habit, error) {
	var habits []*Habit
	err := r.conn(ctx).
		Preload("SharedWith").
		Where("owner_id = ?", ownerID).
		Order("start_date ASC, created_at ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

const rangePredicate = `(
	EXISTS (SELECT 1 FROM jsonb_array_elements_text(repeat_dates) AS d(day) WHERE d.day::date BETWEEN @start AND @end)
	OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(completion_dates) AS c(day) WHERE c.day::date BETWEEN @start AND @end)
)`

// FindInRange narrows on the server; callers still filter the result
// with AnnotateRange.
func (r *habitRepository) FindInRange(ctx context.Context, ownerID uuid.UUID, start, end util.Date) ([]*Habit, error) {
	var habits []*Habit
	err := r.conn(ctx).
		Where("owner_id = ?", ownerID).
		Where(rangePredicate, map[string]interface{}{"start": start.String(), "end": end.String()}).
		Order("start_date ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) FindWithReminderOn(ctx context.Context, day util.Date) ([]*Habit, error) {
	var habits []*Habit
	err := r.conn(ctx).
		Where("status <> ?", StatusInactive).
		Where(`EXISTS (SELECT 1 FROM jsonb_array_elements_text(reminders) AS r(day) WHERE r.day::date = ?)`, day.String()).
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.conn(ctx).
		Model(&Habit{}).
		Select("status, COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *habitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Habit{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) FindParticipant(ctx context.Context, habitID, userID uuid.UUID) (*Participant, error) {
	var p Participant
	err := r.conn(ctx).First(&p, "habit_id = ? AND user_id = ?", habitID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *habitRepository) FindParticipants(ctx context.Context, habitID uuid.UUID) ([]Participant, error) {
	var out []Participant
	if err := r.conn(ctx).Where("habit_id = ?", habitID).Order("invited_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *habitRepository) SaveParticipant(ctx context.Context, p *Participant) error {
	return r.conn(ctx).Save(p).Error
}

func (r *habitRepository) SaveParticipantCompletion(ctx context.Context, c *ParticipantCompletion) error {
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(c).Error
}

func (r *habitRepository) FindParticipantCompletions(ctx context.Context, habitID uuid.UUID) ([]ParticipantCompletion, error) {
	var out []ParticipantCompletion
	if err := r.conn(ctx).Where("habit_id = ?", habitID).Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
