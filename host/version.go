package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinmclean/stickkeys"
)

// LatestVersion is the firmware version bundled with this build of the
// host tools. Devices reporting an older version should be reflashed.
const LatestVersion = stickkeys.Version

// UpdateAvailable reports whether the device firmware is older than
// LatestVersion. Versions are strict "major.minor.patch".
func UpdateAvailable(deviceVersion string) (bool, error) {
	device, err := parseVersion(deviceVersion)
	if err != nil {
		return false, err
	}
	latest, err := parseVersion(LatestVersion)
	if err != nil {
		return false, err
	}

	for i := range device {
		if device[i] != latest[i] {
			return device[i] < latest[i], nil
		}
	}
	return false, nil
}

func parseVersion(v string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return out, fmt.Errorf("invalid version %q", v)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return out, fmt.Errorf("invalid version %q", v)
		}
		out[i] = n
	}
	return out, nil
}
