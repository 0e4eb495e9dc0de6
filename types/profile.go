package types

// UnknownLogin is the login carried by a Profile whose lookup failed
const UnknownLogin = "???"

// Profile represents a user's public identity as returned by the users API
type Profile struct {
	Login string `json:"login"`
	URL   string `json:"html_url"`
	Bio   string `json:"bio"`
}

// UnknownProfile returns the Profile used in place of one that could not
// be retrieved. Both optional fields are left empty.
func UnknownProfile() Profile {
	return Profile{Login: UnknownLogin}
}

// Unknown returns `true` if the Profile is the placeholder for a failed lookup
func (p Profile) Unknown() bool {
	return p.Login == UnknownLogin
}

// FollowerRef is a lightweight reference to a user following another user.
// It shares its wire shape with Profile.
type FollowerRef struct {
	Login string `json:"login"`
	URL   string `json:"html_url"`
	Bio   string `json:"bio"`
}

// Followers is an ordered list of FollowerRef
type Followers []FollowerRef

// Logins returns the logins of all followers in order
func (fs Followers) Logins() []string {
	logins := make([]string, len(fs))
	for i, f := range fs {
		logins[i] = f.Login
	}
	return logins
}
