package dto

// CreateSessionRequest starts a reconciliation session either from an earlier
// analysis session or from an explicit item list. Exactly one source must be
// provided.
type CreateSessionRequest struct {
	AnalysisSessionId string      `json:"analysis_session_id"`
	Items             []MatchItem `json:"items" validate:"omitempty,dive"`
}

type SessionItem struct {
	Id            string `json:"id"`
	Category      string `json:"category"`
	Name          string `json:"name"`
	ImageName     string `json:"imageName,omitempty"`
	Editing       bool   `json:"editing"`
	ProposedAisle string `json:"proposed_aisle,omitempty"`
	Invalid       bool   `json:"invalid"`
}

type SessionAisleGroup struct {
	Aisle string        `json:"aisle"`
	Items []SessionItem `json:"items"`
}

type SessionUnmatchedEntry struct {
	Id            string `json:"id"`
	Category      string `json:"category"`
	Name          string `json:"name"`
	ImageName     string `json:"imageName,omitempty"`
	ProposedAisle string `json:"proposed_aisle,omitempty"`
	Invalid       bool   `json:"invalid"`
}

type SessionResponse struct {
	SessionId string                  `json:"session_id"`
	Groups    []SessionAisleGroup     `json:"groups"`
	Unmatched []SessionUnmatchedEntry `json:"unmatched"`
}

type SetProposedAisleRequest struct {
	Aisle string `json:"aisle"`
}

// ConfirmResponse reports a row's fate so the client can re-render without
// refetching the session.
type ConfirmResponse struct {
	ItemId   string `json:"item_id"`
	Removed  bool   `json:"removed"`
	Invalid  bool   `json:"invalid"`
	Affected int64  `json:"affected,omitempty"`
	Created  bool   `json:"created,omitempty"`
}
