// Package notify は初回完了時のお祝いリンクを外部で開く
package notify

import "fmt"

// Opener はURLをプロセス外で開く
type Opener func(url string) error

// Celebrate はopenでurlを開く（urlが空なら何もしない）
func Celebrate(open Opener, url string) error {
	if url == "" {
		return nil
	}
	if err := open(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
