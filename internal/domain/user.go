package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

type User struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CheckPassword compares the stored credential verbatim.
func (u User) CheckPassword(password string) bool {
	return u.Password == password
}

func (u User) Actor() Actor {
	return Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Actor is the identity performing an operation.
type Actor struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// System acts for background jobs.
var System = Actor{Username: "System", Role: RoleAdmin}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) Owns(b Booking) bool {
	return a.UserID != "" && a.UserID == b.UserID
}

func (a Actor) String() string {
	if a.Username == "" {
		return "System"
	}
	return a.Username
}
