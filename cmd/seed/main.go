// Command seed populates a development database with demo data: a few
// certifications with their audit types, auditors, operators, assignments
// and enough inspections to put periods at varied progress levels.
package main

import (
	"context"
	"fmt"
	"time"

	"certflow-backend/internal/assignments"
	"certflow-backend/internal/auditors"
	"certflow-backend/internal/audittypes"
	"certflow-backend/internal/certifications"
	"certflow-backend/internal/config"
	"certflow-backend/internal/database"
	"certflow-backend/internal/domain"
	"certflow-backend/internal/inspections"
	"certflow-backend/internal/operators"
	"certflow-backend/internal/periodevents"
	"certflow-backend/internal/pkg/clock"
	"certflow-backend/internal/policy"
	"certflow-backend/internal/workcal"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is required for seeding")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		panic("db open: " + err.Error())
	}
	if err := database.AutoMigrate(db); err != nil {
		panic("migrate: " + err.Error())
	}

	ctx := context.Background()
	provider := &policy.Provider{DB: db}
	recorder := periodevents.Recorder{}

	certificationService := &certifications.Service{DB: db}
	auditTypeService := &audittypes.Service{DB: db}
	auditorService := &auditors.Service{DB: db}
	operatorService := &operators.Service{DB: db}
	assignmentService := &assignments.Service{DB: db, Policy: provider, Events: recorder}
	inspectionService := &inspections.Service{DB: db, Policy: provider, Clock: clock.System{}, Events: recorder}

	certNames := map[string][]string{
		"Visual Weld Inspection":  {"Fillet weld check", "Seam integrity check"},
		"Torque Verification":     {"Chassis bolt audit", "Subframe torque audit"},
		"Surface Finish Control":  {"Paint thickness audit"},
		"Final Assembly Sign-off": {"Functional test audit", "Fit and finish audit"},
	}
	auditTypesByCert := map[uuid.UUID][]*domain.ProductAuditType{}
	var certIDs []uuid.UUID
	for name, typeNames := range certNames {
		cert, err := certificationService.Create(ctx, certifications.CreateInput{
			Name:        name,
			Description: strPtr("Demo certification"),
		})
		if err != nil {
			panic("create certification: " + err.Error())
		}
		certIDs = append(certIDs, cert.CertificationID)
		for _, tn := range typeNames {
			at, err := auditTypeService.Create(ctx, audittypes.CreateInput{
				CertificationID: cert.CertificationID,
				Name:            tn,
			})
			if err != nil {
				panic("create audit type: " + err.Error())
			}
			auditTypesByCert[cert.CertificationID] = append(auditTypesByCert[cert.CertificationID], at)
		}
	}

	var auditorIDs []uuid.UUID
	for i, name := range []string{"Lucia", "Marco", "Elena"} {
		a, err := auditorService.Create(ctx, auditors.CreateInput{
			Code:      strPtr(fmt.Sprintf("AUD-%03d", i+1)),
			FirstName: name,
			LastName:  strPtr("Demo"),
		})
		if err != nil {
			panic("create auditor: " + err.Error())
		}
		auditorIDs = append(auditorIDs, a.AuditorID)
	}

	var operatorIDs []uuid.UUID
	for i, name := range []string{"Ana", "Bruno", "Carla", "Diego", "Eva", "Felix", "Gina", "Hugo"} {
		o, err := operatorService.Create(ctx, operators.CreateInput{
			Code:      strPtr(fmt.Sprintf("OP-%03d", i+1)),
			FirstName: name,
			LastName:  strPtr("Demo"),
		})
		if err != nil {
			panic("create operator: " + err.Error())
		}
		operatorIDs = append(operatorIDs, o.OperatorID)
	}

	today := workcal.DateOnly(time.Now().UTC())

	// Assignments at varied progress: some fresh, some mid-period with
	// accumulated units, one close to completion.
	type seedPlan struct {
		operatorIdx int
		certIdx     int
		startedAgo  int // calendar days before today
		unitsSoFar  int
	}
	plans := []seedPlan{
		{0, 0, 3, 0},
		{1, 0, 40, 6},
		{2, 1, 70, 12},
		{3, 1, 120, 9},
		{4, 2, 150, 20},
		{5, 3, 200, 27},
		{6, 3, 15, 2},
		{7, 2, 90, 15},
	}
	created := 0
	for _, p := range plans {
		certID := certIDs[p.certIdx%len(certIDs)]
		assignedOn := today.AddDate(0, 0, -p.startedAgo)
		if !workcal.IsWorkingDay(assignedOn) {
			assignedOn = workcal.NextWorkingDay(assignedOn)
		}
		assignment, period, err := assignmentService.Create(ctx, assignments.CreateInput{
			OperatorID:      operatorIDs[p.operatorIdx%len(operatorIDs)],
			CertificationID: certID,
			AssignedOn:      assignedOn,
		})
		if err != nil {
			panic("create assignment: " + err.Error())
		}
		created++

		// Spread the planned units over inspections of 1-3 units each,
		// dated between the period start and today.
		remaining := p.unitsSoFar
		day := period.StartsOn
		i := 0
		for remaining > 0 {
			units := 1 + (i % 3)
			if units > remaining {
				units = remaining
			}
			types := auditTypesByCert[certID]
			_, _, err := inspectionService.Record(ctx, inspections.RecordInput{
				AssignmentID: assignment.AssignmentID,
				AuditTypeID:  types[i%len(types)].AuditTypeID,
				AuditorID:    auditorIDs[i%len(auditorIDs)],
				InspectedOn:  day,
				Units:        units,
				Result:       strPtr(domain.InspectionResultOK),
			})
			if err != nil {
				panic("record inspection: " + err.Error())
			}
			remaining -= units
			i++
			day = workcal.NextWorkingDay(day)
			if day.After(today) {
				day = today
			}
		}
	}

	fmt.Printf("Seeded %d certifications, %d auditors, %d operators, %d assignments\n",
		len(certIDs), len(auditorIDs), len(operatorIDs), created)
}
