package steam

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrNoAppID means the submitted text contained no recognizable store
// or community link.
var ErrNoAppID = errors.New("no app id found in link")

var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`store\.steampowered\.com/app/(\d+)`),
	regexp.MustCompile(`steamcommunity\.com/app/(\d+)`),
}

// ExtractAppID pulls the numeric app id out of a store or community
// URL. First matching pattern wins.
func ExtractAppID(link string) (int64, error) {
	for _, pattern := range linkPatterns {
		if m := pattern.FindStringSubmatch(link); m != nil {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return 0, ErrNoAppID
			}
			return id, nil
		}
	}
	return 0, ErrNoAppID
}
