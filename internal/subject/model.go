package subject

import "github.com/uptrace/bun"

// Subject is a school subject (Français, Mathématiques, ...).
type Subject struct {
	bun.BaseModel `bun:"table:subjects,alias:sub"`

	ID          int    `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name,notnull" json:"name"`
	Code        string `bun:"code,unique,notnull" json:"code"`
	Description string `bun:"description" json:"description,omitempty"`
	Cycle       string `bun:"cycle" json:"cycle,omitempty"`
	Active      bool   `bun:"active,notnull,default:true" json:"active"`
}

// Defaults is the standard primary-school subject catalogue.
func Defaults() []Subject {
	return []Subject{
		{Name: "Français", Code: "FR", Description: "Langue française", Cycle: "Cycle 2", Active: true},
		{Name: "Mathématiques", Code: "MA", Description: "Mathématiques", Cycle: "Cycle 2", Active: true},
		{Name: "Histoire-Géographie", Code: "HG", Description: "Histoire et géographie", Cycle: "Cycle 3", Active: true},
		{Name: "Sciences", Code: "SC", Description: "Sciences et technologie", Cycle: "Cycle 3", Active: true},
		{Name: "Arts plastiques", Code: "AP", Description: "Arts plastiques", Cycle: "Cycle 2", Active: true},
		{Name: "Éducation musicale", Code: "EM", Description: "Éducation musicale", Cycle: "Cycle 2", Active: true},
		{Name: "EPS", Code: "EPS", Description: "Éducation physique et sportive", Cycle: "Cycle 2", Active: true},
		{Name: "Langues vivantes", Code: "LV", Description: "Langues vivantes", Cycle: "Cycle 2", Active: true},
	}
}
