package db

// Producto is a row of the productos table.
type Producto struct {
	ID     int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Nombre string  `json:"nombre" gorm:"type:varchar(100);not null"`
	Precio float64 `json:"precio" gorm:"type:numeric;not null"`
}

func (Producto) TableName() string {
	return "productos"
}

// Equal reports whether both records have the same persisted identity.
// Records that were never persisted (ID 0) are not equal to anything.
func (p Producto) Equal(other Producto) bool {
	return p.ID != 0 && p.ID == other.ID
}
