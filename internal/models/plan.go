package models

import "encoding/json"

// SessionPlan is the leader's pre-authored plan for one calendar date within
// one class. Locally at most one plan per (class_id, session_date) is
// retained: only the nearest upcoming session matters on-device.
type SessionPlan struct {
	ID                  string  `db:"id" json:"id"`
	ClassID             string  `db:"class_id" json:"class_id"`
	SessionDate         string  `db:"session_date" json:"session_date"`
	Title               *string `db:"title" json:"title,omitempty"`
	TeachingInstruction string  `db:"teaching_instruction" json:"teaching_instruction"`
	TeachingNote        string  `db:"teaching_note" json:"teaching_note"`
	PracticeInstruction string  `db:"practice_instruction" json:"practice_instruction"`
	PracticeNote        string  `db:"practice_note" json:"practice_note"`
	MaterialsJSON       string  `db:"materials" json:"-"`
	Lead                string  `db:"lead" json:"lead"`
}

// Materials decodes the stored materials list.
func (p *SessionPlan) Materials() []string {
	var out []string
	if err := json.Unmarshal([]byte(p.MaterialsJSON), &out); err != nil {
		return nil
	}
	return out
}

// SetMaterials encodes the materials list for storage.
func (p *SessionPlan) SetMaterials(items []string) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		p.MaterialsJSON = "[]"
		return
	}
	p.MaterialsJSON = string(raw)
}

// MarshalJSON flattens the materials list into the API representation.
func (p SessionPlan) MarshalJSON() ([]byte, error) {
	type alias SessionPlan
	return json.Marshal(struct {
		alias
		Materials []string `json:"materials"`
	}{alias: alias(p), Materials: (&p).Materials()})
}
