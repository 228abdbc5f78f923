package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient from teal to blue
	colors := []string{"#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8"}
	lines := []string{
		`  _ __ ___   ___  __ _ _ __   __| | ___ _ __`,
		` | '_ ` + "`" + ` _ \ / _ \/ _` + "`" + ` | '_ \ / _` + "`" + ` |/ _ \ '__|`,
		` | | | | | |  __/ (_| | | | | (_| |  __/ |`,
		` |_| |_| |_|\___|\__,_|_| |_|\__,_|\___|_|`,
	}

	fmt.Println()
	for i, line := range lines {
		fmt.Println(termenv.String(line).Foreground(p.Color(colors[i%len(colors)])))
	}
	fmt.Println(termenv.String("   " + strings.TrimSpace(version)).Foreground(p.Color(colors[len(colors)-1])).Faint())
	fmt.Println()
}
