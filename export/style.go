package export

// StyleTokens is the immutable style set for one theme. Colors are ARGB hex
// strings in the writer's format (alpha first).
type StyleTokens struct {
	TitleColor      string
	TextColor       string
	AccentColor     string
	BackgroundColor string
	FontSize        FontScale
}

// FontScale holds the point sizes used across a theme's slides.
type FontScale struct {
	Title   int
	Heading int
	Body    int
	Bullet  int
}

var themeStyles = map[int]StyleTokens{
	1: {
		TitleColor:      "FF1F3864",
		TextColor:       "FF333333",
		AccentColor:     "FF2E74B5",
		BackgroundColor: "FFFFFFFF",
		FontSize:        FontScale{Title: 40, Heading: 28, Body: 14, Bullet: 12},
	},
	2: {
		TitleColor:      "FF0F172A",
		TextColor:       "FF334155",
		AccentColor:     "FFF59E0B",
		BackgroundColor: "FFFFFFFF",
		FontSize:        FontScale{Title: 36, Heading: 24, Body: 13, Bullet: 11},
	},
	3: {
		TitleColor:      "FF14532D",
		TextColor:       "FF1F2937",
		AccentColor:     "FF16A34A",
		BackgroundColor: "FFF9FAFB",
		FontSize:        FontScale{Title: 38, Heading: 26, Body: 13, Bullet: 11},
	},
}

// ResolveStyle maps a theme id to its style tokens. Any id outside {1,2,3}
// resolves to theme 1, the documented default, so this is total.
func ResolveStyle(themeID int) StyleTokens {
	if tokens, ok := themeStyles[themeID]; ok {
		return tokens
	}
	return themeStyles[1]
}

// ResolveThemeID collapses an arbitrary template id onto a supported theme.
func ResolveThemeID(templateID int) int {
	if templateID >= 1 && templateID <= 3 {
		return templateID
	}
	return 1
}
