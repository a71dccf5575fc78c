package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"kaizen/internal/model"
)

// ErrNotFound is returned when a task id does not resolve to a record.
var ErrNotFound = errors.New("task not found")

// TaskRecord is the stored shape of a task. The store assigns the id and the
// creation timestamp.
type TaskRecord struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     string `gorm:"index"`
	Title       string
	Description string
	DueDate     string
	DueTime     string
	IsCompleted bool `gorm:"default:false"`
	IsStarred   bool `gorm:"default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r TaskRecord) toModel() model.Task {
	return model.Task{
		ID:          strconv.FormatUint(uint64(r.ID), 10),
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		DueTime:     r.DueTime,
		IsCompleted: r.IsCompleted,
		IsStarred:   r.IsStarred,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

// TaskRepository handles CRUD for the cloud task collection.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByOwner returns the owner's tasks ordered by creation time descending.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	var records []TaskRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]model.Task, len(records))
	for i, rec := range records {
		tasks[i] = rec.toModel()
	}
	return tasks, nil
}

// Insert stores a new task and lets the database assign id and createdAt.
func (r *TaskRepository) Insert(ctx context.Context, ownerID string, draft model.TaskDraft) error {
	rec := TaskRecord{
		OwnerID:     ownerID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		DueTime:     draft.DueTime,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Patch merge-updates only the given columns on one task.
func (r *TaskRepository) Patch(ctx context.Context, taskID string, updates map[string]any) error {
	id, err := parseID(taskID)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&TaskRecord{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task permanently.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	id, err := parseID(taskID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&TaskRecord{}, id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func parseID(taskID string) (uint, error) {
	id, err := strconv.ParseUint(taskID, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(id), nil
}
