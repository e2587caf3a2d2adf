package models

// Companion is one entry of the external companion catalog. Only ID is
// required by the backend; the rest is passed through to clients.
type Companion struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	AvatarURL   string            `json:"avatarUrl"`
	Description string            `json:"description,omitempty"`
	VoiceID     string            `json:"voiceId,omitempty"`
	Personality string            `json:"personality,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
