package services

import (
	"cashflow/internal/logger"
)

// Default lookup values offered on a fresh install.
var (
	DefaultStatuses = []string{"Business", "Personal"}
	DefaultTypes    = []string{"Income", "Expense"}
)

// SeedDefaults ensures the default statuses and types exist. It is safe to
// run repeatedly.
func SeedDefaults(statuses StatusServicer, types TypeServicer) error {
	log := logger.Get()

	for _, name := range DefaultStatuses {
		_, created, err := statuses.GetOrCreateStatus(name)
		if err != nil {
			return err
		}
		if created {
			log.Infow("Seeded status", "name", name)
		}
	}
	for _, name := range DefaultTypes {
		_, created, err := types.GetOrCreateType(name)
		if err != nil {
			return err
		}
		if created {
			log.Infow("Seeded type", "name", name)
		}
	}
	return nil
}
