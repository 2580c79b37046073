package room

const untitledVideo = "Untitled Video"

func (r *Room) SetVideoUrl(url string) {
	r.VideoUrl = url
}

// AddToQueue appends an item. An empty title falls back to a placeholder.
func (r *Room) AddToQueue(item QueueItem) QueueItem {
	if item.Title == "" {
		item.Title = untitledVideo
	}
	r.Queue = append(r.Queue, item)

	return item
}

func (r *Room) RemoveFromQueue(itemId string) {
	for i, item := range r.Queue {
		if item.Id == itemId {
			r.Queue = append(r.Queue[:i], r.Queue[i+1:]...)
			return
		}
	}
}

// AdvanceQueue pops the head of the queue and sets it as the current video.
// With an empty queue it reports false and leaves the current video as is.
// Both "play next" and natural video end go through this single method.
func (r *Room) AdvanceQueue() (QueueItem, bool) {
	if len(r.Queue) == 0 {
		return QueueItem{}, false
	}

	next := r.Queue[0]
	r.Queue = r.Queue[1:]
	r.VideoUrl = next.VideoUrl

	return next, true
}

func (r *Room) AddBookmark(bookmark Bookmark) Bookmark {
	r.Bookmarks = append(r.Bookmarks, bookmark)
	return bookmark
}

func (r *Room) RemoveBookmark(bookmarkId string) {
	for i, bookmark := range r.Bookmarks {
		if bookmark.Id == bookmarkId {
			r.Bookmarks = append(r.Bookmarks[:i], r.Bookmarks[i+1:]...)
			return
		}
	}
}

// SetPlaybackSpeed ignores non-positive values, everything else is
// last-writer-wins.
func (r *Room) SetPlaybackSpeed(speed float64) {
	if speed <= 0 {
		return
	}

	r.PlaybackSpeed = speed
}

// SetVolume clamps to the 0-100 range.
func (r *Room) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	r.Volume = volume
}
