package periodevents

import (
	"context"
	"encoding/json"
	"errors"

	"certflow-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder appends period lifecycle events. Record is called with the engine's
// transaction handle so the event commits or rolls back with the state change.
type Recorder struct{}

func (Recorder) Record(tx *gorm.DB, assignmentID, periodID uuid.UUID, eventType string, data map[string]interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return tx.Create(&domain.PeriodEvent{
		AssignmentID: assignmentID,
		PeriodID:     periodID,
		EventType:    eventType,
		EventData:    datatypes.JSON(payload),
	}).Error
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) GetByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]domain.PeriodEvent, error) {
	if assignmentID == uuid.Nil {
		return nil, errors.New("Assignment ID is required")
	}

	var assignment domain.Assignment
	if err := s.DB.WithContext(ctx).Where("assignment_id = ?", assignmentID).Select("assignment_id").First(&assignment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Assignment not found")
		}
		return nil, err
	}

	var events []domain.PeriodEvent
	if err := s.DB.WithContext(ctx).Where("assignment_id = ?", assignmentID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
