// Package version holds the shared version string and the startup
// banners of the sqlet command line tools.
package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// bannerTpl returns the colored startup banner shared by the tools.
func bannerTpl() string {
	banner := `
                _      _
  ___  __ _   | |    | |_
 / __|/ _' |  | |    | __|
 \__ \ (_| |  | |___ | |_
 |___/\__, |  |_____| \__|
         |_|
%s ` + Version + `
A safety layer over the SQLite C API - https://github.com/sqlet/sqlet`

	banner = banner[1:] // drop the leading newline of the raw literal
	return colorCyanBold + banner + colorReset
}

// ShellVersion returns the banner of the sqlet shell.
func ShellVersion() string {
	return fmt.Sprintf(bannerTpl(), "Shell")
}

// BenchVersion returns the banner of sqletbench.
func BenchVersion() string {
	return fmt.Sprintf(bannerTpl(), "Bench")
}
