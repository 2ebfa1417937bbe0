package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location"`
	Website      string     `json:"website"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Career       string     `json:"career"`
	ProfileImage string     `json:"profile_image"`
	Linkedin     string     `json:"linkedin"`
	Github       string     `json:"github"`
	Twitter      string     `json:"twitter"`
	IsPrivate    bool       `json:"is_private"`
	ThemePref    string     `json:"theme_pref"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserSummary is the compact admin listing shape.
type UserSummary struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}

// ProfileView is what callers see of a profile. The owner view carries
// everything except the password hash; the public view hides contact and
// account fields of other users.
type ProfileView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location,omitempty"`
	Website      string     `json:"website,omitempty"`
	DateOfBirth  *string    `json:"date_of_birth,omitempty"`
	Career       string     `json:"career"`
	ProfileImage string     `json:"profile_image"`
	Linkedin     string     `json:"linkedin"`
	Github       string     `json:"github"`
	Twitter      string     `json:"twitter"`
	IsPrivate    *bool      `json:"is_private,omitempty"`
	ThemePref    string     `json:"theme_pref"`
	IsAdmin      *bool      `json:"is_admin,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	Followers    int        `json:"followers"`
	Following    int        `json:"following"`
	Activities   []Activity `json:"activities"`
}

// OwnerView shapes u for its owner (also used by admin full listings).
func OwnerView(u *User) ProfileView {
	v := publicFields(u)
	v.Email = u.Email
	v.Location = u.Location
	v.Website = u.Website
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format("2006-01-02")
		v.DateOfBirth = &dob
	}
	v.IsPrivate = &u.IsPrivate
	v.IsAdmin = &u.IsAdmin
	created := u.CreatedAt
	v.CreatedAt = &created
	return v
}

// PublicView shapes u for a non-owner viewer.
func PublicView(u *User) ProfileView {
	return publicFields(u)
}

func publicFields(u *User) ProfileView {
	return ProfileView{
		ID:           u.ID,
		Name:         u.Name,
		Bio:          u.Bio,
		Career:       u.Career,
		ProfileImage: u.ProfileImage,
		Linkedin:     u.Linkedin,
		Github:       u.Github,
		Twitter:      u.Twitter,
		ThemePref:    u.ThemePref,
	}
}
