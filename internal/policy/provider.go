package policy

import (
	"certflow-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Defaults applied when no policy row is active. Matches the seeded program
// configuration: 29 audited units inside a 180-working-day window.
const (
	DefaultRequiredWorkingDays = 180
	DefaultRequiredUnits       = 29
)

// Params is the snapshot captured into each new validation period.
type Params struct {
	RequiredWorkingDays int `json:"required_working_days"`
	RequiredUnits       int `json:"required_units"`
}

// Defaults returns the fallback parameters.
func Defaults() Params {
	return Params{
		RequiredWorkingDays: DefaultRequiredWorkingDays,
		RequiredUnits:       DefaultRequiredUnits,
	}
}

// Provider resolves the currently active inspection policy. Missing
// configuration is not an error: the defaults are substituted and logged.
type Provider struct {
	DB *gorm.DB
}

// Active returns the parameters of the active policy row, or the defaults when
// none is active. Accepts the DB handle (possibly a transaction) so the read
// joins the caller's transaction boundary.
func (p *Provider) Active(db *gorm.DB) Params {
	if db == nil {
		db = p.DB
	}
	var row domain.InspectionPolicy
	err := db.Where("is_active = ?", true).Order("created_at DESC").First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error().Err(err).Msg("Policy lookup failed; using default parameters")
		} else {
			log.Warn().
				Int("required_working_days", DefaultRequiredWorkingDays).
				Int("required_units", DefaultRequiredUnits).
				Msg("No active inspection policy; using default parameters")
		}
		return Defaults()
	}
	return Params{
		RequiredWorkingDays: row.RequiredWorkingDays,
		RequiredUnits:       row.RequiredUnits,
	}
}
