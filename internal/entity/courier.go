package entity

// RoleCourier marks users that take part in the performance cohort.
const RoleCourier = "courier"

// Courier represents the courier table
type Courier struct {
	ID    int    `db:"id"`
	Name  string `db:"name" valid:"required"`
	Phone string `db:"phone"`
	Role  string `db:"role"`
}
