//go:build !darwin

package shortcut

const (
	superToken = "Super"
	altToken   = "Alt"
)
