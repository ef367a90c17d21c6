//go:build darwin

package notify

import "os/exec"

// OpenURL はmacOSの既定のハンドラでurlを開く
func OpenURL(url string) error {
	return exec.Command("open", url).Start()
}
