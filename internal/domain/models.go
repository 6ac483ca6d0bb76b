package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant-level entity owning document-type pipelines,
// branding, and dashboard configuration.
type Organization struct {
	UUID            uuid.UUID                         `db:"uuid" json:"uuid"`
	Name            string                            `db:"name" json:"name"`
	Logo            string                            `db:"logo" json:"logo"`
	CurrentCategory string                            `db:"current_category" json:"current_category"`
	CurrentStep     int                               `db:"current_step" json:"current_step"`
	Categories      []string                          `json:"categories"`
	Steps           map[DocTypeKey][]FileMetadataStep `json:"steps"`
	CreatedAt       time.Time                         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time                         `db:"updated_at" json:"updated_at"`
}

// FileMetadataStep is one stage of a document-type's processing pipeline,
// carrying schema-specific fields and the chat transcript attached to it.
type FileMetadataStep struct {
	StepFields   map[string]string `json:"step_fields"`
	ChatMessages []Message         `json:"chat_messages"`
}

// Message is a single chat entry on a pipeline step. Immutable once created
// except for StatusIndex, which only advances forward.
type Message struct {
	UUID        uuid.UUID       `json:"uuid"`
	CreatedAt   string          `json:"created_at"` // ISO-8601
	Sender      MessageSender   `json:"sender"`
	Text        string          `json:"text"`
	Statuses    []MessageStatus `json:"statuses"`
	StatusIndex int             `json:"status_index"`
	ShowSender  bool            `json:"show_sender"`
	ShowFooter  bool            `json:"show_footer"`
	ToggleText  bool            `json:"toggle_text"`
}

// MessageStatus is one entry in a message's status progression.
type MessageStatus struct {
	Status string `json:"status"`
}

// DashboardProject is a named collection of chart items shown in the
// analytics view.
type DashboardProject struct {
	UUID  uuid.UUID       `json:"uuid"`
	Name  string          `json:"name"`
	Items []DashboardItem `json:"items"`
}

// DashboardItem is a single chart on a dashboard. Read-mostly; swapped
// wholesale when the active document-type filter changes.
type DashboardItem struct {
	UUID        uuid.UUID         `json:"uuid"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ChartType   ChartType         `json:"chart_type"`
	ChartConfig map[string]string `json:"chart_config"`
	Data        []DataPoint       `json:"data"`
}

// DataPoint is one labeled value in a chart's data series.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DocumentType is a registry entry driving dynamic form generation and
// validation-rule field pickers.
type DocumentType struct {
	ID     string       `db:"id" json:"id"`
	Schema SchemaFields `json:"schema"`
}

// SchemaFields is the field list of a document-type schema.
type SchemaFields struct {
	Fields []SchemaField `json:"fields"`
}

// SchemaField describes one extractable field of a document type.
type SchemaField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Application groups document types with the validation rules applied to them.
type Application struct {
	ID              string           `db:"id" json:"id"`
	Description     string           `db:"description" json:"description"`
	DocumentTypesID []string         `json:"document_types_id"`
	ValidationRules []ValidationRule `json:"validation_rules"`
}

// ValidationRule is a configurable rule attached to an application.
// DocumentTypeID and DocumentField are only meaningful for field-type rules.
type ValidationRule struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Type            ValidationRuleType `json:"type"`
	DocumentTypeID  string             `json:"document_type_id,omitempty"`
	DocumentField   string             `json:"document_field,omitempty"`
	ConditionNotMet string             `json:"condition_not_met"`
}

// ReviewDocument is a document in the review queue: uploaded, extracted
// externally, and awaiting operator approval or rejection.
type ReviewDocument struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	FileName      string           `db:"file_name" json:"file_name"`
	DocumentType  string           `db:"document_type" json:"document_type"`
	UploadedAt    time.Time        `db:"uploaded_at" json:"uploaded_at"`
	Confidence    float64          `db:"confidence" json:"confidence"`
	StorageBucket string           `db:"storage_bucket" json:"storage_bucket"`
	StorageKey    string           `db:"storage_key" json:"storage_key"`
	State         ReviewState      `db:"state" json:"state"`
	ReviewedAt    *time.Time       `db:"reviewed_at" json:"reviewed_at"`
	ExtractedData []ExtractedField `json:"extracted_data"`
}

// ExtractedField is a single named value pulled from a document by the
// external extraction process. Only Value is editable during review;
// Name, Type, and Confidence are fixed at creation.
type ExtractedField struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Type       string  `json:"type"`
}
