package models

// Principal is the authenticated identity attached to every request by the
// auth middleware. Admin principals bypass the permission gate entirely.
type Principal struct {
	UserID   string `json:"user_id"`
	Login    string `json:"login"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}
