package core

// PrimitiveType is the semantic type inferred for a column.
type PrimitiveType int

// Primitive types. The set is closed.
const (
	TypeString PrimitiveType = iota
	TypeInt
	TypeBool
)

// String returns the lower-case name of the type.
func (t PrimitiveType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "boolean"
	default:
		return "string"
	}
}

// PrismaType returns the scalar type name used in schema documents.
func (t PrimitiveType) PrismaType() string {
	switch t {
	case TypeInt:
		return "Int"
	case TypeBool:
		return "Boolean"
	default:
		return "String"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t PrimitiveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Relation describes a foreign key inferred from a column name.
// TargetModel is a naming-convention guess and is never checked against the
// models produced by a run.
type Relation struct {
	// Field is the local relation field (the column name without "Id")
	Field string `json:"field"`
	// TargetModel is the pluralized, pascal-cased Field
	TargetModel string `json:"target_model"`
	// ForeignKey is the column holding the key
	ForeignKey string `json:"foreign_key"`
	// References is the referenced column on the target model
	References string `json:"references"`
	// OnDelete is the referential action
	OnDelete string `json:"on_delete"`
}

// ColumnDecision is the classification of a single column.
type ColumnDecision struct {
	Name string        `json:"name"`
	Type PrimitiveType `json:"type"`
	// PrimaryKey is set only by the literal "id" rule
	PrimaryKey bool `json:"primary_key,omitempty"`
	// Relation is non-nil only for foreign keys, whose Type is always TypeInt
	Relation *Relation `json:"relation,omitempty"`
	// Rule names the classification rule that produced the decision
	Rule string `json:"rule"`
}

// Model is the inferred schema unit for one input file.
type Model struct {
	// Name is the pascal-cased base name of the source file
	Name string `json:"name"`
	// Columns are the normalized column names in header order
	Columns []string `json:"columns"`
}

// RawRow maps normalized column names to raw field values.
// A missing key means the field was absent from the source row.
type RawRow map[string]string
