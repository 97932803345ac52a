//go:build !prod

package sensordash

func openBrowser(url string) {
	// Dev builds are usually restarted constantly; popping a new tab every
	// time is more annoying than useful.
}
