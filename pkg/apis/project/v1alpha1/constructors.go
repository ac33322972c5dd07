package v1alpha1

// NewProject creates a Project populated with the default scaffolding settings.
func NewProject() *Project {
	return &Project{
		APIVersion: APIVersion,
		Kind:       Kind,
		Spec:       NewProjectSpec(),
	}
}

// NewProjectSpec creates a new Spec with default values.
func NewProjectSpec() Spec {
	return Spec{
		Template:        NewTemplateSpec(),
		Git:             NewGitSpec(),
		PackageManager:  NewPackageManagerSpec(),
		ContinueOnError: false,
	}
}

// NewTemplateSpec creates a new TemplateSpec with default values.
func NewTemplateSpec() TemplateSpec {
	return TemplateSpec{
		Source:      DefaultTemplateSource,
		Cache:       true,
		CacheDir:    DefaultCacheDir,
		GitHubToken: "",
		Exclude:     nil,
	}
}

// NewGitSpec creates a new GitSpec with default values.
func NewGitSpec() GitSpec {
	return GitSpec{
		Branch:        DefaultBranch,
		CommitMessage: DefaultCommitMessage,
	}
}

// NewPackageManagerSpec creates a new PackageManagerSpec with default values.
func NewPackageManagerSpec() PackageManagerSpec {
	return PackageManagerSpec{
		Binary: DefaultPackageManager,
	}
}
