package ui

import (
	"github.com/five82/atmos/internal/weather"
)

// Glyphs per icon code, used on cards and list rows.
var iconGlyphs = map[string]string{
	"01d": "☀",
	"03d": "☁",
	"10d": "☂",
	"13d": "❄",
	"11d": "ϟ",
	"09d": "⁂",
}

const unknownGlyph = "≋"

// Five-line art per icon code for the detail panel.
var iconArt = map[string][]string{
	"01d": {
		`   \   /   `,
		`    .-.    `,
		` ― (   ) ― `,
		`    '-'    `,
		`   /   \   `,
	},
	"03d": {
		`           `,
		`    .--.   `,
		` .-(    ). `,
		`(___.__)__)`,
		`           `,
	},
	"10d": {
		`    .-.    `,
		`   (   ).  `,
		`  (___(__) `,
		`   ‚ʻ‚ʻ‚ʻ   `,
		`   ‚ʻ‚ʻ‚ʻ   `,
	},
	"13d": {
		`    .-.    `,
		`   (   ).  `,
		`  (___(__) `,
		`   *  *  * `,
		`  *  *  *  `,
	},
	"11d": {
		`    .-.    `,
		`   (   ).  `,
		`  (___(__) `,
		`    ⚡ ⚡    `,
		`   ʻ ʻ ʻ   `,
	},
	"09d": {
		`    .-.    `,
		`   (   ).  `,
		`  (___(__) `,
		`   ʻ ʻ ʻ ʻ `,
		`  ʻ ʻ ʻ ʻ  `,
	},
}

var unknownArt = []string{
	`           `,
	` _ - _ - _ `,
	`  _ - _ -  `,
	` _ - _ - _ `,
	`           `,
}

// iconGlyph returns the small glyph for a condition group.
func iconGlyph(condition string) string {
	if g, ok := iconGlyphs[weather.IconCode(condition)]; ok {
		return g
	}
	return unknownGlyph
}

// largeIcon returns the detail-panel art for a condition group.
func largeIcon(condition string) []string {
	if art, ok := iconArt[weather.IconCode(condition)]; ok {
		return art
	}
	return unknownArt
}
