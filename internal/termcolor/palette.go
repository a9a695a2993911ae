package termcolor

const basicRed = 1

var (
	matchRGBDark  = [3]uint8{255, 85, 85}
	matchRGBLight = [3]uint8{175, 0, 0}
)

// MatchStyle returns the highlight used for matched text. Basic terminals get
// plain SGR 31; richer profiles get a red tuned to the background scheme.
func MatchStyle(profile Profile, scheme Scheme) Style {
	rgb := matchRGBDark
	if scheme == SchemeLight {
		rgb = matchRGBLight
	}
	switch profile {
	case ProfileTrueColor:
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		idx := rgbToANSI256(rgb[0], rgb[1], rgb[2])
		return Style{FG256: &idx}
	default:
		color := basicRed
		return Style{FGBasic: &color}
	}
}

// DefaultMatchStyle is MatchStyle for a basic dark terminal.
func DefaultMatchStyle() Style {
	return MatchStyle(ProfileBasic8, SchemeDark)
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
