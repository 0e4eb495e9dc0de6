package types

import "fmt"

// Owner is the account a repository belongs to
type Owner struct {
	Login string `json:"login"`
	URL   string `json:"html_url"`
}

// RepositoryRef is a reference to a single repository owned by a user
type RepositoryRef struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Owner       Owner  `json:"owner"`
	Description string `json:"description"`
	URL         string `json:"html_url"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Fork        bool   `json:"fork"`
}

// Path returns the owner/name path of the repository
func (r RepositoryRef) Path() string {
	if r.FullName != "" {
		return r.FullName
	}
	return fmt.Sprintf("%s/%s", r.Owner.Login, r.Name)
}

// String implements the Stringer interface
func (r RepositoryRef) String() string {
	return r.Path()
}

// Repositories is an ordered list of RepositoryRef
type Repositories []RepositoryRef
