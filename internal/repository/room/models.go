package room

// ControlMode gates who may issue an operation in a room.
type ControlMode string

const (
	ControlModeEveryone  ControlMode = "everyone"
	ControlModeAdminOnly ControlMode = "admin-only"
)

func (m ControlMode) Toggled() ControlMode {
	if m == ControlModeEveryone {
		return ControlModeAdminOnly
	}

	return ControlModeEveryone
}

type User struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type QueueItem struct {
	Id       string `json:"id"`
	VideoUrl string `json:"videoUrl"`
	Title    string `json:"title"`
	AddedBy  string `json:"addedBy"`
}

type Bookmark struct {
	Id        string  `json:"id"`
	Name      string  `json:"name"`
	Time      float64 `json:"time"`
	VideoId   string  `json:"videoId"`
	CreatedBy string  `json:"createdBy"`
}

// Room is one watch session. Field names on the wire follow the client
// protocol; the full struct is the snapshot sent to reconcile client views.
type Room struct {
	Id              string      `json:"id"`
	AdminId         string      `json:"admin"`
	Users           []User      `json:"users"`
	VideoUrl        string      `json:"videoUrl"`
	Queue           []QueueItem `json:"queue"`
	PlaybackSpeed   float64     `json:"playbackSpeed"`
	Volume          int         `json:"volume"`
	Bookmarks       []Bookmark  `json:"bookmarks"`
	IsLocked        bool        `json:"isLocked"`
	MutedUsers      []string    `json:"mutedUsers"`
	PlaybackControl ControlMode `json:"playbackControl"`
	VideoControl    ControlMode `json:"videoControl"`
}

// NewRoom constructs a room with the creator as sole member and sole admin.
func NewRoom(id, adminId, username string) *Room {
	return &Room{
		Id:      id,
		AdminId: adminId,
		Users: []User{{
			Id:       adminId,
			Username: username,
			IsAdmin:  true,
		}},
		VideoUrl:        "",
		Queue:           []QueueItem{},
		PlaybackSpeed:   1,
		Volume:          100,
		Bookmarks:       []Bookmark{},
		IsLocked:        false,
		MutedUsers:      []string{},
		PlaybackControl: ControlModeEveryone,
		VideoControl:    ControlModeEveryone,
	}
}

// Clone returns a deep copy safe to hand outside the registry.
func (r *Room) Clone() Room {
	clone := *r
	clone.Users = append([]User{}, r.Users...)
	clone.Queue = append([]QueueItem{}, r.Queue...)
	clone.Bookmarks = append([]Bookmark{}, r.Bookmarks...)
	clone.MutedUsers = append([]string{}, r.MutedUsers...)

	return clone
}
