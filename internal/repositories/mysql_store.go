package repositories

import "database/sql"

// MySQLStore bundles the MySQL repositories behind the Store interface.
type MySQLStore struct {
	PortRepository
	OperatorRepository
	ShipRepository
	ScheduleRepository
	BookingRepository
	UserRepository
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{
		PortRepository:     PortRepository{DB: db},
		OperatorRepository: OperatorRepository{DB: db},
		ShipRepository:     ShipRepository{DB: db},
		ScheduleRepository: ScheduleRepository{DB: db},
		BookingRepository:  BookingRepository{DB: db},
		UserRepository:     UserRepository{DB: db},
	}
}

var _ Store = (*MySQLStore)(nil)
