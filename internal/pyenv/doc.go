// Package pyenv sets up the Python side of a bootstrapped repository: it
// installs uv when missing, syncs the project environment and launches the
// notebook server declared in pyproject.toml.
package pyenv
