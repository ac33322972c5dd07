package v1alpha1

import "github.com/devantler-tech/snapp/pkg/envvar"

// ExpandEnvVars expands ${VAR} and ${VAR:-default} placeholders in the
// user-facing string fields of the project configuration.
// Call it after unmarshaling and before validation.
func (p *Project) ExpandEnvVars() {
	tmpl := &p.Spec.Template
	tmpl.Source = envvar.Expand(tmpl.Source)
	tmpl.CacheDir = envvar.Expand(tmpl.CacheDir)
	tmpl.Exclude = envvar.ExpandAll(tmpl.Exclude)

	p.Spec.Git.Branch = envvar.Expand(p.Spec.Git.Branch)
	p.Spec.Git.CommitMessage = envvar.Expand(p.Spec.Git.CommitMessage)
	p.Spec.PackageManager.Binary = envvar.Expand(p.Spec.PackageManager.Binary)
}
