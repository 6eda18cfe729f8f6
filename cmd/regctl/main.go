// Command regctl reads and modifies the Windows registry from the command
// line, and imports and exports regedit .reg files.
package main

func main() {
	execute()
}
