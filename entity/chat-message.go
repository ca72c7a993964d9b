package entity

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is a single advisor turn.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Source is a grounding citation attached to a model reply.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AdvisorReply is what a text generator returns for one turn.
type AdvisorReply struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}
