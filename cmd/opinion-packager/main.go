// Command opinion-packager bundles the extension into a version-named zip archive.
package main

import "github.com/oshokin/stuff-your-opinion/cmd/opinion-packager/cmd"

func main() {
	cmd.Execute()
}
