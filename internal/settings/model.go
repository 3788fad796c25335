package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

const (
	TypeString = "string"
	TypeInt    = "int"
	TypeBool   = "bool"
	TypeJSON   = "json"
)

// Parameter is a single application setting stored as a typed key/value pair.
type Parameter struct {
	bun.BaseModel `bun:"table:parameters,alias:prm"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Key         string    `bun:"key,notnull,unique" json:"key"`
	Value       string    `bun:"value,notnull" json:"value"`
	ValueType   string    `bun:"value_type,notnull,default:'string'" json:"valueType"`
	Description string    `bun:"description" json:"description"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// TypedValue decodes the raw value according to the parameter's declared type.
func (p *Parameter) TypedValue() (interface{}, error) {
	switch p.ValueType {
	case TypeInt:
		return strconv.Atoi(p.Value)
	case TypeBool:
		return strconv.ParseBool(p.Value)
	case TypeJSON:
		var v interface{}
		if err := json.Unmarshal([]byte(p.Value), &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return p.Value, nil
	}
}

// ValidateValue checks that raw parses under the parameter's declared type.
func (p *Parameter) ValidateValue(raw string) error {
	switch p.ValueType {
	case TypeInt:
		if _, err := strconv.Atoi(raw); err != nil {
			return fmt.Errorf("value %q is not a valid integer", raw)
		}
	case TypeBool:
		if _, err := strconv.ParseBool(raw); err != nil {
			return fmt.Errorf("value %q is not a valid boolean", raw)
		}
	case TypeJSON:
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("value is not valid JSON")
		}
	}
	return nil
}

// Defaults returns the parameters seeded at startup.
func Defaults() []Parameter {
	return []Parameter{
		{Key: "school_name", Value: "École du Cap", ValueType: TypeString, Description: "Nom de l'établissement"},
		{Key: "school_year", Value: "2025-2026", ValueType: TypeString, Description: "Année scolaire en cours"},
		{Key: "current_period", Value: "P1", ValueType: TypeString, Description: "Période d'évaluation courante"},
		{Key: "generation_enabled", Value: "true", ValueType: TypeBool, Description: "Autoriser la génération de commentaires"},
	}
}

// UpdateValueRequest is the request body for a parameter update
type UpdateValueRequest struct {
	Value string `json:"value" validate:"required"`
}
