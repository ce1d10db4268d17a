package domain

// AdminUsername is the one account allowed on the admin routes.
const AdminUsername = "admin"

type User struct {
	Username            string
	Email               string
	FullName            string
	PasswordHash        string // bcrypt, or legacy argon2id until next login
	Disabled            bool   // reserved for suspension, not enforced
	Avatar              string
	OnboardingCompleted bool
}

// IsAdmin reports whether u may use the admin routes.
func (u User) IsAdmin() bool { return u.Username == AdminUsername }

// NewUser is what a store needs to create an account. An empty Avatar is
// filled by the store's avatar picker.
type NewUser struct {
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Avatar       string
	Disabled     bool

	OnboardingCompleted bool
}
