// SPDX-License-Identifier: MPL-2.0

package main

import cmd "cratestage/cmd/cratestage"

func main() {
	cmd.Execute()
}
