package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// ProductLine groups workstations. Append-only from the catalog's
// perspective; the full set is overwritten on save.
type ProductLine struct {
	bun.BaseModel `bun:"table:product_lines,alias:pl"`

	ID        int64     `bun:"id,pk,autoincrement" json:"-"`
	Name      string    `bun:"name,unique,notnull" json:"name"`
	Position  int64     `bun:"position,notnull,default:0" json:"-"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
}

// Workstation owns an ordered label collection. Name is the dropdown key
// and must be unique within its product line.
type Workstation struct {
	bun.BaseModel `bun:"table:workstations,alias:w"`

	ID          int64     `bun:"id,pk,autoincrement" json:"-"`
	Name        string    `bun:"name,notnull" json:"name"`
	ProductLine string    `bun:"product_line,notnull" json:"product_line"`
	Color       string    `bun:"color,notnull,default:'#ff0000'" json:"color"`
	Position    int64     `bun:"position,notnull,default:0" json:"-"`
	Labels      []Label   `bun:"-" json:"labels"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"-"`
}

// PartSide is one printed side of a bin label. Quantity holds either a
// numeric count or a floor-stock location override; QuantityLocked tells the
// UI the field is floor-stock-controlled and must not be edited.
type PartSide struct {
	PartNumber     string `bun:"part_number" json:"part_number"`
	AltPartNumber  string `bun:"alt_part_number" json:"alt_part_number"`
	Quantity       string `bun:"quantity" json:"quantity"`
	AFrameLocation string `bun:"a_frame_location" json:"a_frame_location"`
	QuantityLocked bool   `bun:"quantity_locked" json:"quantity_locked,omitempty"`
}

// Blank reports whether the side carries no printable content.
func (s PartSide) Blank() bool {
	return strings.TrimSpace(s.PartNumber) == "" &&
		strings.TrimSpace(s.AltPartNumber) == "" &&
		strings.TrimSpace(s.Quantity) == "" &&
		strings.TrimSpace(s.AFrameLocation) == ""
}

// Label is the two-sided part record that becomes one printed bin label.
// Identity key within a workstation is Left.PartNumber.
type Label struct {
	bun.BaseModel `bun:"table:labels,alias:lb"`

	ID               int64    `bun:"id,pk,autoincrement" json:"-"`
	WorkstationID    int64    `bun:"workstation_id,notnull" json:"-"`
	Position         int64    `bun:"position,notnull,default:0" json:"-"`
	Left             PartSide `bun:"embed:left_" json:"left"`
	Right            PartSide `bun:"embed:right_" json:"right"`
	WorkstationName  string   `bun:"workstation_name" json:"workstation_name,omitempty"`
	WorkstationColor string   `bun:"workstation_color" json:"workstation_color,omitempty"`
}

// Key returns the identity key used for de-duplication.
func (l Label) Key() string {
	return strings.TrimSpace(l.Left.PartNumber)
}

// AuditLog captures immutable change history for catalog operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
