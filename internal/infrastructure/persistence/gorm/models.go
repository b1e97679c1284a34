// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	History []HistoryEntryModel `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// RecipeModel represents the GORM model for resolved recipes
type RecipeModel struct {
	ID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title string    `gorm:"type:varchar(255);not null;index"`

	// Canonical structured content
	Ingredients  StringSlice    `gorm:"type:json"`
	Instructions StringSlice    `gorm:"type:json"`
	Nutrition    NutritionFacts `gorm:"type:json"`

	// Pre-rendered display fragments
	IngredientsHTML  string `gorm:"type:text"`
	InstructionsHTML string `gorm:"type:text"`
	NutritionHTML    string `gorm:"type:text"`

	Servings       int    `gorm:"default:0"`
	ReadyInMinutes int    `gorm:"column:ready_in_minutes;default:0"`
	SourceURL      string `gorm:"type:text"`
	Image          string `gorm:"type:text"`

	// Provenance
	Origin    string `gorm:"type:varchar(20);not null;index"`
	OriginTag string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName overrides the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// HistoryEntryModel represents the GORM model for per-user history entries
type HistoryEntryModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID `gorm:"type:char(36);not null;index:idx_history_user_recipe,unique;index"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index:idx_history_user_recipe,unique"`
	Saved    bool      `gorm:"default:false;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	User   UserModel   `gorm:"foreignKey:UserID"`
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// TableName overrides the table name for HistoryEntryModel
func (HistoryEntryModel) TableName() string {
	return "history_entries"
}

// StringSlice custom type for handling string arrays as JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// NutritionFactRecord is one stored nutrition line
type NutritionFactRecord struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// NutritionFacts custom type for handling nutrition lines as JSON
type NutritionFacts []NutritionFactRecord

// Scan implements the sql.Scanner interface
func (n *NutritionFacts) Scan(value interface{}) error {
	if value == nil {
		*n = NutritionFacts{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	default:
		return fmt.Errorf("cannot scan %T into NutritionFacts", value)
	}
}

// Value implements the driver.Valuer interface
func (n NutritionFacts) Value() (driver.Value, error) {
	if len(n) == 0 {
		return "[]", nil
	}
	return json.Marshal(n)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for HistoryEntryModel
func (h *HistoryEntryModel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&RecipeModel{},
		&HistoryEntryModel{},
	}
}
