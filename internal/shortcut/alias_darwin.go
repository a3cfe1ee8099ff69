//go:build darwin

package shortcut

const (
	superToken = "Cmd"
	altToken   = "Option"
)
