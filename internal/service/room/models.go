package room

// ChatMessage and Reaction are transient: constructed, broadcast and
// discarded, never stored on the room.
type ChatMessage struct {
	Id        string `json:"id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Reaction struct {
	Id        string `json:"id"`
	Username  string `json:"username"`
	Reaction  string `json:"reaction"`
	Timestamp string `json:"timestamp"`
}

// RoomPreview is the lightweight lookup served over REST for the join
// screen.
type RoomPreview struct {
	Id          string `json:"id"`
	IsLocked    bool   `json:"isLocked"`
	MemberCount int    `json:"memberCount"`
}
