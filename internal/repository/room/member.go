package room

// AddUser appends a non-admin member. The caller is responsible for
// pre-checking the lock state.
func (r *Room) AddUser(id, username string) User {
	user := User{
		Id:       id,
		Username: username,
		IsAdmin:  false,
	}
	r.Users = append(r.Users, user)

	return user
}

// RemoveUser removes the member by id and returns the removed record so the
// caller can notify peers. It does not reassign admin or delete the room.
func (r *Room) RemoveUser(id string) (User, bool) {
	for i, user := range r.Users {
		if user.Id == id {
			r.Users = append(r.Users[:i], r.Users[i+1:]...)
			return user, true
		}
	}

	return User{}, false
}

func (r *Room) GetUser(id string) (User, bool) {
	for _, user := range r.Users {
		if user.Id == id {
			return user, true
		}
	}

	return User{}, false
}

func (r *Room) HasUser(id string) bool {
	_, ok := r.GetUser(id)
	return ok
}

// TransferAdmin moves the admin flag to the given member. It fails if the
// target is not a current member; exactly one member holds the flag
// afterwards.
func (r *Room) TransferAdmin(newAdminId string) bool {
	newAdminIdx := -1
	for i, user := range r.Users {
		if user.Id == newAdminId {
			newAdminIdx = i
			break
		}
	}
	if newAdminIdx == -1 {
		return false
	}

	for i := range r.Users {
		r.Users[i].IsAdmin = false
	}
	r.Users[newAdminIdx].IsAdmin = true
	r.AdminId = newAdminId

	return true
}

// ToggleMuted flips the chat mute for the given id and reports whether the
// user is muted afterwards.
func (r *Room) ToggleMuted(id string) bool {
	for i, mutedId := range r.MutedUsers {
		if mutedId == id {
			r.MutedUsers = append(r.MutedUsers[:i], r.MutedUsers[i+1:]...)
			return false
		}
	}

	r.MutedUsers = append(r.MutedUsers, id)
	return true
}

func (r *Room) IsMuted(id string) bool {
	for _, mutedId := range r.MutedUsers {
		if mutedId == id {
			return true
		}
	}

	return false
}
