package configmanager

import (
	"github.com/devantler-tech/snapp/pkg/apis/project/v1alpha1"
)

// FieldSelector defines a field and its metadata for configuration management.
type FieldSelector[T any] struct {
	Selector     func(*T) any // Function that returns a pointer to the field
	Key          string       // Viper key, also the field's path in the config file
	Flag         string       // CLI flag name; no flag is registered when empty
	Description  string       // Human-readable description for CLI flags
	DefaultValue any          // Default value for the field
}

// TemplateSourceFieldSelector selects the template reference.
func TemplateSourceFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Template.Source },
		Key:          "template.source",
		Flag:         "template",
		Description:  "Template to scaffold from (github:owner/repo[/subdir][#ref])",
		DefaultValue: v1alpha1.DefaultTemplateSource,
	}
}

// TemplateCacheFieldSelector selects whether template archives are cached.
func TemplateCacheFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Template.Cache },
		Key:          "template.cache",
		Flag:         "cache",
		Description:  "Reuse cached template archives and cache new downloads",
		DefaultValue: true,
	}
}

// TemplateCacheDirFieldSelector selects the template cache directory.
func TemplateCacheDirFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Template.CacheDir },
		Key:          "template.cacheDir",
		Flag:         "cache-dir",
		Description:  "Directory holding cached template archives",
		DefaultValue: v1alpha1.DefaultCacheDir,
	}
}

// TemplateExcludeFieldSelector selects template paths that are not copied.
func TemplateExcludeFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Template.Exclude },
		Key:          "template.exclude",
		Flag:         "exclude",
		Description:  "Template paths or glob patterns to leave out",
		DefaultValue: []string{},
	}
}

// TemplateGitHubTokenFieldSelector selects the GitHub API token.
// It is read from the environment or the config file only.
func TemplateGitHubTokenFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Template.GitHubToken },
		Key:          KeyGitHubToken,
		DefaultValue: "",
	}
}

// GitBranchFieldSelector selects the initial branch name.
func GitBranchFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Git.Branch },
		Key:          "git.branch",
		Flag:         "branch",
		Description:  "Name of the initial branch",
		DefaultValue: v1alpha1.DefaultBranch,
	}
}

// GitCommitMessageFieldSelector selects the initial commit message.
func GitCommitMessageFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.Git.CommitMessage },
		Key:          "git.commitMessage",
		Flag:         "commit-message",
		Description:  "Message of the initial commit",
		DefaultValue: v1alpha1.DefaultCommitMessage,
	}
}

// PackageManagerFieldSelector selects the dependency installer binary.
func PackageManagerFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.PackageManager.Binary },
		Key:          "packageManager.binary",
		Flag:         "package-manager",
		Description:  "Package manager used for the clean install",
		DefaultValue: v1alpha1.DefaultPackageManager,
	}
}

// ContinueOnErrorFieldSelector selects whether failed setup steps abort scaffolding.
func ContinueOnErrorFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(p *v1alpha1.Project) any { return &p.Spec.ContinueOnError },
		Key:          "continueOnError",
		Flag:         "continue-on-error",
		Description:  "Report failed setup steps and keep going instead of aborting",
		DefaultValue: false,
	}
}

// DefaultFieldSelectors returns the selectors for every project setting.
func DefaultFieldSelectors() []FieldSelector[v1alpha1.Project] {
	return []FieldSelector[v1alpha1.Project]{
		TemplateSourceFieldSelector(),
		TemplateCacheFieldSelector(),
		TemplateCacheDirFieldSelector(),
		TemplateExcludeFieldSelector(),
		TemplateGitHubTokenFieldSelector(),
		GitBranchFieldSelector(),
		GitCommitMessageFieldSelector(),
		PackageManagerFieldSelector(),
		ContinueOnErrorFieldSelector(),
	}
}
