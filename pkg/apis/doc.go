// Package apis provides API type definitions for snapp configuration.
//
//   - project: the project configuration loaded from flags, environment and .snapp.yaml
package apis
