package certifications

import (
	"context"
	"testing"

	"certflow-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCertificationTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Certification{}))
	return &Service{DB: db}
}

func TestCreateCertification_DuplicateName(t *testing.T) {
	s := setupCertificationTest(t)
	ctx := context.Background()

	_, err := s.Create(ctx, CreateInput{Name: "Visual Weld Inspection"})
	require.NoError(t, err)

	_, err = s.Create(ctx, CreateInput{Name: "Visual Weld Inspection"})
	assert.Equal(t, ErrDuplicateName, err)
}

func TestUpdateCertification_RenameClash(t *testing.T) {
	s := setupCertificationTest(t)
	ctx := context.Background()

	first, err := s.Create(ctx, CreateInput{Name: "Visual Weld Inspection"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateInput{Name: "Torque Verification"})
	require.NoError(t, err)

	clash := "Torque Verification"
	_, err = s.Update(ctx, first.CertificationID, UpdateInput{Name: &clash})
	assert.Equal(t, ErrDuplicateName, err)

	renamed := "Seam Weld Inspection"
	row, err := s.Update(ctx, first.CertificationID, UpdateInput{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, row.Name)
}

func TestUpdateCertification_Deactivate(t *testing.T) {
	s := setupCertificationTest(t)
	ctx := context.Background()

	row, err := s.Create(ctx, CreateInput{Name: "Visual Weld Inspection"})
	require.NoError(t, err)
	assert.True(t, row.IsActive)

	inactive := false
	updated, err := s.Update(ctx, row.CertificationID, UpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	reloaded, err := s.GetByID(ctx, updated.CertificationID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}
