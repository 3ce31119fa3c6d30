// Package misc keeps build time information about the program.
package misc

// Set by the linker: -X flexsections/misc.version=... -X flexsections/misc.githash=...
var (
	version = "dev"
	githash = "unknown"
)

const appName = "flexsections"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}
