package v1alpha1

const (
	// Group is the API group for snapp.
	Group = "snapp.o1labs.org"
	// Version is the API version for snapp.
	Version = "v1alpha1"
	// Kind is the kind for snapp projects.
	Kind = "Project"
	// APIVersion is the full API version for snapp.
	APIVersion = Group + "/" + Version
)

// Project is the configuration used to scaffold a new snapp project.
type Project struct {
	APIVersion string `json:"apiVersion,omitzero" mapstructure:"apiVersion"`
	Kind       string `json:"kind,omitzero"       mapstructure:"kind"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec"`
}

// Spec defines how a project is scaffolded.
type Spec struct {
	Template       TemplateSpec       `json:"template,omitzero"       mapstructure:"template"`
	Git            GitSpec            `json:"git,omitzero"            mapstructure:"git"`
	PackageManager PackageManagerSpec `json:"packageManager,omitzero" mapstructure:"packageManager"`
	// ContinueOnError reports failed setup steps and carries on instead of aborting.
	ContinueOnError bool `json:"continueOnError,omitzero" mapstructure:"continueOnError"`
}

// TemplateSpec defines where the project template comes from.
type TemplateSpec struct {
	Source      string   `json:"source,omitzero"      mapstructure:"source"`
	Cache       bool     `json:"cache,omitzero"       mapstructure:"cache"`
	CacheDir    string   `json:"cacheDir,omitzero"    mapstructure:"cacheDir"`
	GitHubToken string   `json:"-"                    mapstructure:"githubToken"`
	Exclude     []string `json:"exclude,omitzero"     mapstructure:"exclude"`
}

// GitSpec defines the initial repository state.
type GitSpec struct {
	Branch        string `json:"branch,omitzero"        mapstructure:"branch"`
	CommitMessage string `json:"commitMessage,omitzero" mapstructure:"commitMessage"`
}

// PackageManagerSpec defines the dependency installer.
type PackageManagerSpec struct {
	Binary string `json:"binary,omitzero" mapstructure:"binary"`
}
