package v1alpha1

const (
	// DefaultTemplateSource is the project template shipped with snapp-cli.
	DefaultTemplateSource = "github:o1-labs/snapp-cli/templates/project#main"
	// DefaultCacheDir is where downloaded template archives are kept.
	DefaultCacheDir = "~/.snapp/cache"
	// DefaultBranch is the name of the initial branch.
	DefaultBranch = "main"
	// DefaultCommitMessage is the message of the initial commit.
	DefaultCommitMessage = "Init commit"
	// DefaultPackageManager is the binary used to install dependencies.
	DefaultPackageManager = "npm"
)
