package specification

import "gorm.io/gorm"

// ByName filters notebooks by their unique name.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
