// Package osutil holds platform names and the permissions tracklog creates
// files and folders with.
package osutil

const Windows = "windows"

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
