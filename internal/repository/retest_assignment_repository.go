package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
	"gorm.io/gorm"
)

type RetestAssignmentRepository interface {
	Create(assignment *model.RetestAssignment) error
	FindByID(id uint) (*model.RetestAssignment, error)
	FindAll(status *model.RetestStatus) ([]model.RetestAssignment, error)
	FindPendingByManager(managerID uuid.UUID) ([]model.RetestAssignment, error)
	MarkCompleted(id uint, at time.Time) (bool, error)
}

type retestAssignmentRepository struct {
	db *gorm.DB
}

func NewRetestAssignmentRepository(db *gorm.DB) RetestAssignmentRepository {
	return &retestAssignmentRepository{db: db}
}

func (r *retestAssignmentRepository) Create(assignment *model.RetestAssignment) error {
	return r.db.Create(assignment).Error
}

func (r *retestAssignmentRepository) FindByID(id uint) (*model.RetestAssignment, error) {
	var assignment model.RetestAssignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *retestAssignmentRepository) FindAll(status *model.RetestStatus) ([]model.RetestAssignment, error) {
	query := r.db.Model(&model.RetestAssignment{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var assignments []model.RetestAssignment
	err := query.Order("created_at DESC, id DESC").Find(&assignments).Error
	return assignments, err
}

func (r *retestAssignmentRepository) FindPendingByManager(managerID uuid.UUID) ([]model.RetestAssignment, error) {
	var assignments []model.RetestAssignment
	err := r.db.Where("manager_id = ? AND status = ?", managerID, model.RetestStatusPending).
		Order("created_at ASC, id ASC").
		Find(&assignments).Error
	return assignments, err
}

// MarkCompleted flips a pending assignment to completed. It reports false when
// the assignment was not pending, which leaves the first completion time intact.
func (r *retestAssignmentRepository) MarkCompleted(id uint, at time.Time) (bool, error) {
	result := r.db.Model(&model.RetestAssignment{}).
		Where("id = ? AND status = ?", id, model.RetestStatusPending).
		Updates(map[string]any{"status": model.RetestStatusCompleted, "completed_at": at})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
