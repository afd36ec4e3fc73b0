package entity

// ChatMessage is one transcript entry. Role is "user" or "assistant".
type ChatMessage struct {
	Role    string
	Content string
}
