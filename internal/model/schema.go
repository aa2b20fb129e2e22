package model

// FieldType identifies how a field is matched by the record filter.
type FieldType string

const (
	// FieldTypeText fields match criteria by case-insensitive substring.
	FieldTypeText FieldType = "text"
	// FieldTypeCategory fields match criteria by case-insensitive equality.
	FieldTypeCategory FieldType = "category"
	// FieldTypeNumeric fields match criteria by bucket range.
	FieldTypeNumeric FieldType = "numeric"
	// FieldTypeFlag fields hold booleans and are display-only.
	FieldTypeFlag FieldType = "flag"
)

// FieldDef describes a single field of a record kind.
type FieldDef struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required,omitempty"`
	Values   []string  `json:"values,omitempty"` // allowed values for category fields
}

// Schema is the fixed field layout of a record kind.
type Schema struct {
	Kind         Kind       `json:"kind"`
	Fields       []FieldDef `json:"fields"`
	SearchFields []string   `json:"search_fields,omitempty"` // text fields scanned by the "search" criterion
}

// Field returns the definition of the named field.
func (s Schema) Field(name string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

var (
	lawyerStatuses      = []string{"pending", "verified"}
	historyTypes        = []string{"consultation", "case", "document"}
	historyStatuses     = []string{"completed", "active"}
	consultationModes   = []string{"video", "phone", "in-person", "online"}
	caseStatuses        = []string{"active", "review", "completed"}
	appointmentTypes    = []string{"consultation", "case_discussion"}
	appointmentStatuses = []string{"confirmed", "pending", "completed"}
	notificationTypes   = []string{"consultation_accepted", "appointment_reminder", "case_update", "payment_success"}
)

// SchemaFor returns the schema of the given kind. Unknown kinds get an empty
// schema, against which every criterion is ignored.
func SchemaFor(k Kind) Schema {
	switch k {
	case KindLawyer:
		return Schema{
			Kind: k,
			Fields: []FieldDef{
				{Name: "name", Type: FieldTypeText, Required: true},
				{Name: "email", Type: FieldTypeText},
				{Name: "specialization", Type: FieldTypeText, Required: true},
				{Name: "enrollment_number", Type: FieldTypeText},
				{Name: "location", Type: FieldTypeText},
				{Name: "language", Type: FieldTypeText},
				{Name: "court_language", Type: FieldTypeText},
				{Name: "experience", Type: FieldTypeNumeric},
				{Name: "consultation_fee", Type: FieldTypeNumeric},
				{Name: "rating", Type: FieldTypeNumeric},
				{Name: "status", Type: FieldTypeCategory, Required: true, Values: lawyerStatuses},
				{Name: "available", Type: FieldTypeFlag},
			},
			SearchFields: []string{"name", "specialization", "location"},
		}
	case KindCustomer:
		return Schema{
			Kind: k,
			Fields: []FieldDef{
				{Name: "name", Type: FieldTypeText, Required: true},
				{Name: "email", Type: FieldTypeText},
				{Name: "location", Type: FieldTypeText},
				{Name: "join_date", Type: FieldTypeText},
			},
			SearchFields: []string{"name", "email"},
		}
	case KindHistory:
		return Schema{
			Kind: k,
			Fields: []FieldDef{
				{Name: "type", Type: FieldTypeCategory, Required: true, Values: historyTypes},
				{Name: "title", Type: FieldTypeText, Required: true},
				{Name: "lawyer", Type: FieldTypeText},
				{Name: "date", Type: FieldTypeText},
				{Name: "duration", Type: FieldTypeText},
				{Name: "cost", Type: FieldTypeNumeric},
				{Name: "status", Type: FieldTypeCategory, Values: historyStatuses},
				{Name: "mode", Type: FieldTypeCategory, Values: consultationModes},
			},
			SearchFields: []string{"title", "lawyer"},
		}
	case KindCase:
		return Schema{
			Kind: k,
			Fields: []FieldDef{
				{Name: "title", Type: FieldTypeText, Required: true},
				{Name: "case_number", Type: FieldTypeText},
				{Name: "lawyer", Type: FieldTypeText},
				{Name: "status", Type: FieldTypeCategory, Required: true, Values: caseStatuses},
				{Name: "progress", Type: FieldTypeNumeric},
				{Name: "start_date", Type: FieldTypeText},
				{Name: "next_hearing", Type: FieldTypeText},
				{Name: "description", Type: FieldTypeText},
				{Name: "documents", Type: FieldTypeNumeric},
				{Name: "outcome", Type: FieldTypeText},
			},
			SearchFields: []string{"title", "case_number", "lawyer"},
		}
	case KindAppointment:
		return Schema{
			Kind: k,
			Fields: []FieldDef{
				{Name: "lawyer", Type: FieldTypeText, Required: true},
				{Name: "specialization", Type: FieldTypeText},
				{Name: "type", Type: FieldTypeCategory, Values: appointmentTypes},
				{Name: "date", Type: FieldTypeText},
				{Name: "time", Type: FieldTypeText},
				{Name: "status", Type: FieldTypeCategory, Values: appointmentStatuses},
				{Name: "mode", Type: FieldTypeCategory, Values: consultationModes},
				{Name: "fee", Type: FieldTypeNumeric},
				{Name: "description", Type: FieldTypeText},
			},
			SearchFields: []string{"lawyer", "description"},
		}
	case KindNotification:
		return Schema{
			Kind: k,
			Fields: []FieldDef{
				{Name: "type", Type: FieldTypeCategory, Values: notificationTypes},
				{Name: "title", Type: FieldTypeText, Required: true},
				{Name: "message", Type: FieldTypeText},
				{Name: "read", Type: FieldTypeFlag},
			},
			SearchFields: []string{"title", "message"},
		}
	}
	return Schema{Kind: k}
}
