package analytics

// RawUser is the subset of a GitHub REST user payload the portfolio needs.
type RawUser struct {
	Login           string  `json:"login"`
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	AvatarURL       string  `json:"avatar_url"`
	HTMLURL         string  `json:"html_url"`
	Location        *string `json:"location"`
	Company         *string `json:"company"`
	Blog            *string `json:"blog"`
	TwitterUsername *string `json:"twitter_username"`
	Followers       int     `json:"followers"`
	Following       int     `json:"following"`
	PublicRepos     int     `json:"public_repos"`
	PublicGists     int     `json:"public_gists"`
	CreatedAt       string  `json:"created_at"`
}

// Profile is the display form of a GitHub user.
type Profile struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	ProfileURL  string `json:"profileUrl"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	Twitter     string `json:"twitter"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"publicRepos"`
	PublicGists int    `json:"publicGists"`
	CreatedAt   string `json:"createdAt"`
}

// ProfileFrom converts a raw user, falling back to the login when the user
// has no display name.
func ProfileFrom(u RawUser) Profile {
	name := deref(u.Name)
	if name == "" {
		name = u.Login
	}
	return Profile{
		Username:    u.Login,
		Name:        name,
		Bio:         deref(u.Bio),
		Avatar:      u.AvatarURL,
		ProfileURL:  u.HTMLURL,
		Location:    deref(u.Location),
		Company:     deref(u.Company),
		Blog:        deref(u.Blog),
		Twitter:     deref(u.TwitterUsername),
		Followers:   u.Followers,
		Following:   u.Following,
		PublicRepos: u.PublicRepos,
		PublicGists: u.PublicGists,
		CreatedAt:   u.CreatedAt,
	}
}
