package store

import "github.com/MKhiriev/go-sched/internal/logger"

// Storages groups all repositories built on a single [DB].
type Storages struct {
	UserRepository        UserRepository
	AppointmentRepository AppointmentRepository
}

// NewStorages wires every repository to db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		AppointmentRepository: NewAppointmentRepository(db, log),
	}
}
