// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "srcpack-cli/cmd/srcpack"
)

func main() {
	cmd.Execute()
}
