//go:build !darwin && !windows

package notify

import (
	"fmt"
	"os/exec"
)

// OpenURL はxdg-openがあればそれでurlを開く
func OpenURL(url string) error {
	path, err := exec.LookPath("xdg-open")
	if err != nil {
		return fmt.Errorf("no browser opener found: %w", err)
	}
	return exec.Command(path, url).Start()
}
