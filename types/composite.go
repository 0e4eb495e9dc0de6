package types

// CompositeUser combines a user's Profile with their followers and
// repositories. Followers and Repositories are never nil in a CompositeUser
// built with NewCompositeUser.
type CompositeUser struct {
	Profile      Profile      `json:"profile"`
	Followers    Followers    `json:"followers"`
	Repositories Repositories `json:"repositories"`
}

// NewCompositeUser builds a CompositeUser from the given parts, keeping the
// order of followers and repositories as given.
func NewCompositeUser(profile Profile, followers Followers, repositories Repositories) CompositeUser {
	if followers == nil {
		followers = Followers{}
	}
	if repositories == nil {
		repositories = Repositories{}
	}

	return CompositeUser{
		Profile:      profile,
		Followers:    followers,
		Repositories: repositories,
	}
}

// Login returns the login of the aggregated user
func (u CompositeUser) Login() string {
	return u.Profile.Login
}

// Stars returns the total number of stars across all repositories
func (u CompositeUser) Stars() int {
	var n int
	for _, repo := range u.Repositories {
		n += repo.Stars
	}
	return n
}

// Degraded returns the parts of the CompositeUser that can be recognised as
// placeholders from the record alone. An empty list of followers or
// repositories is indistinguishable from a failed lookup and is not reported.
func (u CompositeUser) Degraded() []string {
	if u.Profile.Unknown() {
		return []string{"profile"}
	}
	return nil
}
