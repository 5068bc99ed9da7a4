package local

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
)

// demoPassword is the shared credential for the seeded demo accounts.
const demoPassword = "rently-demo"

type seedUser struct {
	name string
	role domain.Role
}

// The demo roster so a fresh install is not empty. The duplicate
// "Dulce Santos" tenant entry is kept on purpose: login resolves duplicates
// to the first match, and the seed data exercises that path.
var seedUsers = []seedUser{
	{"Cesar Tirado", domain.RoleLandlord},
	{"Sergio Rocha", domain.RoleTenant},
	{"Dulce Santos", domain.RoleTenant},
	{"Emiliano de Sanchez", domain.RoleLandlord},
	{"Ashraful Garcia", domain.RoleTenant},
	{"Dulce Santos", domain.RoleTenant},
}

func seedRoster(log zerolog.Logger) []userRecord {
	records := make([]userRecord, 0, len(seedUsers))
	for i, su := range seedUsers {
		secret, err := domain.BcryptSecret(demoPassword)
		if err != nil {
			log.Error().Err(err).Str("name", su.name).Msg("seeding user failed")
			continue
		}
		records = append(records, userRecord{
			ID:           strconv.Itoa(i + 1),
			Name:         su.name,
			Role:         string(su.role),
			PasswordHash: secret.Value,
		})
	}
	return records
}
