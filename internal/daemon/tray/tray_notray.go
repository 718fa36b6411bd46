//go:build notray

package tray

const systrayBuilt = false

func newSystrayHost() Host {
	return nil
}
