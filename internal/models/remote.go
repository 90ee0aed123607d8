package models

import "encoding/json"

// Remote table rows as the hosted backend returns them. Kept separate from
// the local models so wire-format quirks stay at the boundary.

// RemoteSession is one row of the calendar_sessions table.
type RemoteSession struct {
	ID          string `json:"id"`
	ClassID     string `json:"class_id"`
	SessionDate string `json:"session_date"`
	SessionType string `json:"session_type"`
}

// RemotePlan is one row of the execution_plans table, optionally embedding
// its requirement_catalog entry for the human-readable title. Depending on
// the relationship cardinality the backend serialises the embed as a single
// object or a one-element array; Title() normalises both.
type RemotePlan struct {
	ID                  string          `json:"id"`
	SessionID           string          `json:"session_id"`
	RequirementID       *string         `json:"requirement_id"`
	Lead                string          `json:"lead"`
	Materials           []string        `json:"materials"`
	TeachingInstruction string          `json:"teaching_instruction"`
	TeachingNote        string          `json:"teaching_note"`
	PracticeInstruction string          `json:"practice_instruction"`
	PracticeNote        string          `json:"practice_note"`
	Requirement         json.RawMessage `json:"requirement_catalog"`
}

type remoteRequirement struct {
	Title string `json:"title"`
}

// Title resolves the joined catalog title to a single optional string.
func (p *RemotePlan) Title() *string {
	if len(p.Requirement) == 0 {
		return nil
	}

	var single remoteRequirement
	if err := json.Unmarshal(p.Requirement, &single); err == nil && single.Title != "" {
		return &single.Title
	}

	var many []remoteRequirement
	if err := json.Unmarshal(p.Requirement, &many); err == nil && len(many) > 0 && many[0].Title != "" {
		return &many[0].Title
	}

	return nil
}

// AuthSession is the authenticated session as reported by the backend's
// auth endpoint.
type AuthSession struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}
