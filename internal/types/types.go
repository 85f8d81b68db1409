package types

// GitHubContent is one entry of a repository directory listing as returned
// by the GitHub contents API. Package directories have Type == "dir".
type GitHubContent struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Path    string `json:"path"`
	HTMLURL string `json:"html_url"`
	GitURL  string `json:"git_url"`
}

// PackageManifest is the metadata a plugin author declares in the
// manifest.json of their package directory. Every field is optional.
type PackageManifest struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Repo        string   `json:"repo"`
	Version     string   `json:"version"`
	Icon        string   `json:"icon"`
	Main        string   `json:"main"`
	Theme       bool     `json:"theme"`
	Effect      bool     `json:"effect"`
	Web         bool     `json:"web"`
	Sponsors    []string `json:"sponsors"`
}

// GitHubCommit is one entry of the GitHub commit-history API, newest first.
type GitHubCommit struct {
	SHA    string       `json:"sha"`
	Commit CommitDetail `json:"commit"`
}

// CommitDetail carries the parts of a commit object the collector consumes.
type CommitDetail struct {
	Committer CommitSignature `json:"committer"`
}

// CommitSignature identifies who committed and when.
type CommitSignature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// CommitDates holds the ISO-8601 timestamps of the oldest and newest commit
// touching a package directory. Both are empty when no history was found.
type CommitDates struct {
	CreatedAt   string
	LastUpdated string
}

// PackageRecord is the catalog output unit for one package directory.
// A record either carries manifest-derived fields, or Error when no
// manifest.json was retrievable. IconURL, CreatedAt and LastUpdated are
// always serialized, even when empty.
type PackageRecord struct {
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Repo        string `json:"repo,omitempty"`
	Version     string `json:"version,omitempty"`
	Dir         string `json:"dir,omitempty"`
	IconURL     string `json:"iconUrl"`
	CreatedAt   string `json:"created_at"`
	LastUpdated string `json:"last_updated"`
	Error       string `json:"error,omitempty"`
}
