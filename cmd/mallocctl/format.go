package main

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatNumber renders n with thousands separators.
func formatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// formatBytes renders a byte count in binary units.
func formatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
