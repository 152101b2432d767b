package auth

import (
	"fmt"
	"io"
	"strings"
)

// ShowCookieExtractionGuide writes step-by-step instructions for copying
// the LeetCode session cookies out of a browser
func ShowCookieExtractionGuide(w io.Writer) {
	line := strings.Repeat("=", 72)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "LEETCODE COOKIE GUIDE")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "leetdl reads your submissions with the cookies of a logged-in browser.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEP 1: Log in at https://leetcode.com")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEP 2: Open Developer Tools")
	fmt.Fprintln(w, "   Chrome/Edge/Firefox: F12 or Ctrl+Shift+I (Cmd+Option+I on Mac)")
	fmt.Fprintln(w, "   Safari: enable the Develop menu, then Cmd+Option+I")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEP 3: Find the cookies")
	fmt.Fprintln(w, "   Application tab (Chrome) or Storage tab (Firefox)")
	fmt.Fprintln(w, "   Cookies > https://leetcode.com")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEP 4: Copy these values")
	fmt.Fprintln(w, "   LEETCODE_SESSION   a long JWT starting with eyJ")
	fmt.Fprintln(w, "   csrftoken          a 64 character token")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy the whole value without quotes or semicolons. The session expires")
	fmt.Fprintln(w, "after a few weeks; run 'leetdl auth login' again when the login check fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "These cookies give full access to your LeetCode account. Never share them.")
	fmt.Fprintln(w, line)
}

// ShowQuickExtractGuide writes a one-line reminder of where the cookies are
func ShowQuickExtractGuide(w io.Writer) {
	fmt.Fprintln(w, "F12 > Application > Cookies > leetcode.com: need LEETCODE_SESSION and csrftoken")
}
