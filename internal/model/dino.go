package model

// Dino categories and reproduction types as stored in the dinos table.
const (
	DinoCategoryPvP    = "PvP"
	DinoCategorySoaker = "Soaker"
	DinoCategoryFlyer  = "Flyer"
	DinoCategoryWater  = "Water"
	DinoCategoryAny    = "Any"

	EggTypeEgg    = "Egg"
	EggTypeEmbryo = "Embryo"
	EggTypeClone  = "Clone"
)

// ValidDinoCategory reports whether c is a recognised dino category.
func ValidDinoCategory(c string) bool {
	switch c {
	case DinoCategoryPvP, DinoCategorySoaker, DinoCategoryFlyer, DinoCategoryWater, DinoCategoryAny:
		return true
	}
	return false
}

// ValidEggType reports whether t is a recognised reproduction type.
func ValidEggType(t string) bool {
	switch t {
	case EggTypeEgg, EggTypeEmbryo, EggTypeClone:
		return true
	}
	return false
}

// Dino is a creature species entry.
//
// Fields:
//  ID       – primary key identifier.
//  FullName – full display name of the species.
//  Name     – short name.
//  Category – PvP | Soaker | Flyer | Water | Any.
//  EggType  – Egg | Embryo | Clone.
type Dino struct {
	ID       uint64 // dinos.id
	FullName string // dinos.fullname
	Name     string // dinos.name
	Category string // dinos.category
	EggType  string // dinos.egg_type
}
