// Package provisioner groups provisioning services.
//
//   - project: creates a new project from a template, initializes git, installs
//     dependencies and records the initial commit
package provisioner
