//go:build darwin || windows || linux

package clip

import "golang.design/x/clipboard"

func readText() (string, bool, error) {
	text := clipboard.Read(clipboard.FmtText)
	if text == nil {
		return "", false, nil
	}
	return string(text), true, nil
}

func writeText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
