package dto

// TrackRequest is the single "track" call consumed by the capture widget.
// It deliberately carries no timestamp field: the recorder stamps server
// time, and any extra fields a client sends are dropped on decode. Length
// caps mirror the column sizes so oversized payloads fail before the insert.
type TrackRequest struct {
	NetID     string                 `json:"netId" validate:"required,max=64"`
	Name      string                 `json:"name" validate:"max=255"`
	PagePath  string                 `json:"pagePath" validate:"max=512"`
	PageTitle string                 `json:"pageTitle" validate:"max=512"`
	Action    string                 `json:"action" validate:"max=64"`
	Element   string                 `json:"element" validate:"max=255"`
	Value     string                 `json:"value" validate:"max=1024"`
	SessionID string                 `json:"sessionId" validate:"max=128"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// TrackResponse acknowledges a recorded event.
type TrackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
