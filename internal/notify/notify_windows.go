//go:build windows

package notify

import "os/exec"

// OpenURL はWindowsの既定のハンドラでurlを開く
func OpenURL(url string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
}
