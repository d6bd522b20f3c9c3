package inhibitor

import (
	"regexp"
	"strconv"
)

// dpmsSettings is a snapshot of the X display power management and
// screensaver timeouts, taken before disabling them so they can be
// restored afterwards.
type dpmsSettings struct {
	Standby            int
	Suspend            int
	Off                int
	ScreensaverTimeout int
}

var (
	// "  Standby: 600    Suspend: 600    Off: 600"
	dpmsRe = regexp.MustCompile(`Standby:\s+(\d+)\s+Suspend:\s+(\d+)\s+Off:\s+(\d+)`)
	// "  timeout:  600    cycle:  600"
	screensaverRe = regexp.MustCompile(`timeout:\s+(\d+)\s+cycle:`)
)

// parseXsetQuery extracts DPMS and screensaver timeouts from `xset q`
// output. Returns ok=false when neither section is present.
func parseXsetQuery(out string) (dpmsSettings, bool) {
	var s dpmsSettings

	dpms := dpmsRe.FindStringSubmatch(out)
	if dpms != nil {
		s.Standby = mustAtoi(dpms[1])
		s.Suspend = mustAtoi(dpms[2])
		s.Off = mustAtoi(dpms[3])
	}

	ss := screensaverRe.FindStringSubmatch(out)
	if ss != nil {
		s.ScreensaverTimeout = mustAtoi(ss[1])
	}

	if dpms == nil && ss == nil {
		return dpmsSettings{}, false
	}
	return s, true
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s) // submatches are \d+ only
	return n
}
