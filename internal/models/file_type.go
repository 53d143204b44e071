package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileType describes one record type configured in a workspace: an internal
// ledger report or an external bank/MIS feed. FileMetadata carries a list of
// name/value entries, one of which ("unique_column") names the field that
// uniquely identifies a transaction within this type.
type FileType struct {
	ID             string `gorm:"primaryKey"`
	WorkspaceID    string `gorm:"index"`
	MerchantID     string
	SourceID       string
	Name           string
	Schema         datatypes.JSON `gorm:"column:schema"`
	FileMetadata   datatypes.JSON
	SourceCategory string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

// MetadataEntry is one name/value pair inside FileType.FileMetadata.
type MetadataEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MetadataEntries decodes FileMetadata. A malformed or empty blob yields nil;
// absence of metadata is a normal state during workspace exploration.
func (ft *FileType) MetadataEntries() []MetadataEntry {
	if len(ft.FileMetadata) == 0 {
		return nil
	}
	var entries []MetadataEntry
	if err := json.Unmarshal(ft.FileMetadata, &entries); err != nil {
		return nil
	}
	return entries
}

// UniqueColumn returns the declared unique-key field name for this type.
func (ft *FileType) UniqueColumn() (string, bool) {
	for _, e := range ft.MetadataEntries() {
		if e.Name == "unique_column" && e.Value != "" {
			return e.Value, true
		}
	}
	return "", false
}

// SchemaColumns decodes the declared column list from Schema. Nil when the
// schema is absent or not in the expected shape.
func (ft *FileType) SchemaColumns() []string {
	if len(ft.Schema) == 0 {
		return nil
	}
	var cols []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(ft.Schema, &cols); err != nil {
		return nil
	}
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
