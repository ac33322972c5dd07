// Package v1alpha1 contains the configuration types used to scaffold snapp projects.
package v1alpha1
