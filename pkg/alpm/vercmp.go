package alpm

import "strings"

// VerCmp compares two pacman package versions of the form
// [epoch:]pkgver[-pkgrel] and returns -1, 0 or 1.
//
// Epochs are compared first (missing epoch is 0), then pkgver, then pkgrel
// when both versions have one. Each part is compared segment by segment:
// numeric segments numerically, alphabetic segments lexically, a numeric
// segment beats an alphabetic one, and a trailing alphabetic segment loses
// to nothing at all, so 1.0rc1 < 1.0 < 1.0.a < 1.0.1.
func VerCmp(a, b string) int {
	if a == b {
		return 0
	}

	epoch1, ver1, rel1, hasRel1 := parseEVR(a)
	epoch2, ver2, rel2, hasRel2 := parseEVR(b)

	if c := rpmvercmp(epoch1, epoch2); c != 0 {
		return c
	}
	if c := rpmvercmp(ver1, ver2); c != 0 {
		return c
	}
	if hasRel1 && hasRel2 {
		return rpmvercmp(rel1, rel2)
	}
	return 0
}

// parseEVR splits epoch:version-release. The epoch is the leading run of
// digits before a ':' and defaults to "0"; the release follows the last '-'.
func parseEVR(evr string) (epoch, version, release string, hasRelease bool) {
	i := 0
	for i < len(evr) && isDigit(evr[i]) {
		i++
	}

	epoch, version = "0", evr
	if i < len(evr) && evr[i] == ':' {
		if i > 0 {
			epoch = evr[:i]
		}
		version = evr[i+1:]
	}

	if j := strings.LastIndexByte(version, '-'); j >= 0 {
		return epoch, version[:j], version[j+1:], true
	}
	return epoch, version, "", false
}

func rpmvercmp(a, b string) int {
	if a == b {
		return 0
	}

	// one/two walk the strings; ptr1/ptr2 mark the end of the previous segment.
	one, two := 0, 0
	ptr1, ptr2 := 0, 0

	for one < len(a) && two < len(b) {
		for one < len(a) && !isAlnum(a[one]) {
			one++
		}
		for two < len(b) && !isAlnum(b[two]) {
			two++
		}
		if one >= len(a) || two >= len(b) {
			break
		}

		// Different separator lengths decide on their own.
		if sep1, sep2 := one-ptr1, two-ptr2; sep1 != sep2 {
			if sep1 < sep2 {
				return -1
			}
			return 1
		}

		ptr1, ptr2 = one, two
		isNum := isDigit(a[ptr1])
		if isNum {
			for ptr1 < len(a) && isDigit(a[ptr1]) {
				ptr1++
			}
			for ptr2 < len(b) && isDigit(b[ptr2]) {
				ptr2++
			}
		} else {
			for ptr1 < len(a) && isAlpha(a[ptr1]) {
				ptr1++
			}
			for ptr2 < len(b) && isAlpha(b[ptr2]) {
				ptr2++
			}
		}

		seg1, seg2 := a[one:ptr1], b[two:ptr2]
		if seg2 == "" {
			// Segment types differ: numeric beats alphabetic.
			if isNum {
				return 1
			}
			return -1
		}

		if isNum {
			seg1 = strings.TrimLeft(seg1, "0")
			seg2 = strings.TrimLeft(seg2, "0")
			if len(seg1) != len(seg2) {
				if len(seg1) > len(seg2) {
					return 1
				}
				return -1
			}
		}
		if c := strings.Compare(seg1, seg2); c != 0 {
			return c
		}

		one, two = ptr1, ptr2
	}

	if one >= len(a) && two >= len(b) {
		return 0
	}

	// A remaining alphabetic segment never beats an empty string.
	if (one >= len(a) && !isAlpha(b[two])) || (one < len(a) && isAlpha(a[one])) {
		return -1
	}
	return 1
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isAlpha(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }
func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }
