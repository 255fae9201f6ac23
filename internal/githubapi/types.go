package githubapi

type repositoryJSON struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	HTMLURL       string `json:"html_url"`
	Private       bool   `json:"private"`
	Archived      bool   `json:"archived"`
	HasIssues     bool   `json:"has_issues"`
	OpenIssues    int    `json:"open_issues_count"`
	DefaultBranch string `json:"default_branch"`
}

type labelJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// Repository is a simplified repository descriptor.
type Repository struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	HTMLURL    string `json:"html_url"`
	Private    bool   `json:"private"`
	Archived   bool   `json:"archived"`
	HasIssues  bool   `json:"has_issues"`
	OpenIssues int    `json:"open_issues"`
}

// Label is an issue label defined on a repository.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

func mapRepository(r repositoryJSON) Repository {
	return Repository{
		ID:         r.ID,
		FullName:   r.FullName,
		HTMLURL:    r.HTMLURL,
		Private:    r.Private,
		Archived:   r.Archived,
		HasIssues:  r.HasIssues,
		OpenIssues: r.OpenIssues,
	}
}

func mapLabel(l labelJSON) Label {
	return Label{
		Name:        l.Name,
		Color:       l.Color,
		Description: l.Description,
		Default:     l.Default,
	}
}
