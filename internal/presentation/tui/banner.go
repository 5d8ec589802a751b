package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Berry Airlines concierge banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Berry gradient, indigo to raspberry.
	s1 := termenv.String(`  ____                       `).Foreground(p.Color("#818cf8"))
	s2 := termenv.String(` | __ )  ___ _ __ _ __ _   _ `).Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(` |  _ \ / _ \ '__| '__| | | |`).Foreground(p.Color("#c084fc"))
	s4 := termenv.String(` | |_) |  __/ |  | |  | |_| |`).Foreground(p.Color("#e879f9"))
	s5 := termenv.String(` |____/ \___|_|  |_|   \__, |`).Foreground(p.Color("#f472b6"))
	s6 := termenv.String(`      A i r l i n e s  |___/ `).Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
