// Package errors provides the classified error primitives used across pagestrap.
//
// Every failure the bootstrap can hit falls into one of a small set of categories:
//   - CategoryConfig: owner/repo could not be resolved from flags, remote or prompt
//   - CategoryMissingArtifact: a required template or expected file is absent
//   - CategoryDegraded: a computation fell back to a placeholder value
//   - CategoryExternalTool: an optional subprocess (uv, notebook) failed
//
// Severity decides what the CLI does with it: fatal and error abort the run with
// exit code 1, warning is logged and execution continues.
//
// Example usage:
//
//	err := errors.MissingArtifactError("required template not found").
//		WithContext("path", tmplPath).
//		Build()
package errors
