// Package svc provides the service layer of snapp.
//
// Subpackages:
//   - provisioner: the project provisioning pipeline
//   - template: remote template fetching with a local archive cache
package svc
