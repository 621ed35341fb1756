// Package git wraps the go-git operations pagestrap needs: reading the
// origin remote of the working copy to infer owner and repository, and
// cloning or fast-forwarding a checkout for the installer.
package git
