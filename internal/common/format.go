package common

import (
	"fmt"
	"strings"
)

// DefaultWidth is the console separator width used by the menu screens.
const DefaultWidth = 50

// PrintSeparator prints a separator line with the given character and width.
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintHeader prints a titled section header between separators.
func PrintHeader(title string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a summary line between separators.
func PrintFooter(summary string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(summary)
	PrintSeparator("=", width)
	fmt.Println()
}

// PrintBoxSeparator prints a box-drawing separator under a list header.
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the box-drawing prefix for a list item.
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under a list item.
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}
