package onvif

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/sosodev/duration"
)

// xsdDuration is the xsd:duration lexical form, weeks included
var xsdDuration = regexp.MustCompile(`^-?P(\d+(\.\d+)?Y)?(\d+(\.\d+)?M)?(\d+(\.\d+)?W)?(\d+(\.\d+)?D)?(T(\d+(\.\d+)?H)?(\d+(\.\d+)?M)?(\d+(\.\d+)?S)?)?$`)

// maxDurationSeconds is the longest span a time.Duration holds
const maxDurationSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseDuration parses an xsd:duration such as PT10S or P1DT2H30M.
// Years and months are counted as 365 and 30 days.
func ParseDuration(s string) (time.Duration, error) {
	orig := s
	s = strings.TrimSpace(s)
	if !xsdDuration.MatchString(s) || strings.HasSuffix(s, "P") || strings.HasSuffix(s, "T") {
		return 0, errors.NotValidf("duration %q", orig)
	}

	negative := strings.HasPrefix(s, "-")
	d, err := duration.Parse(strings.TrimPrefix(s, "-"))
	if err != nil {
		return 0, errors.NotValidf("duration %q", orig)
	}

	const day = 24 * 3600
	total := d.Years*365*day +
		d.Months*30*day +
		d.Weeks*7*day +
		d.Days*day +
		d.Hours*3600 +
		d.Minutes*60 +
		d.Seconds
	if total >= maxDurationSeconds {
		return 0, errors.NotValidf("duration %q out of range", orig)
	}

	out := time.Duration(math.Round(total * float64(time.Second)))
	if negative {
		out = -out
	}
	return out, nil
}

// durationSeconds reads the required duration child name as seconds
func (n node) durationSeconds(name string) (float64, error) {
	s, err := n.str(name)
	if err != nil {
		return 0, err
	}
	d, err := ParseDuration(s)
	if err != nil {
		return 0, errors.Annotatef(err, "at %s", n.at(name))
	}
	return d.Seconds(), nil
}

// optDurationSeconds reads the optional duration child name as seconds
func (n node) optDurationSeconds(name string) (*float64, error) {
	if _, ok := n.child(name); !ok {
		return nil, nil
	}
	v, err := n.durationSeconds(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// durationString reads the required duration child name rendered as text
func (n node) durationString(name string) (string, error) {
	s, err := n.str(name)
	if err != nil {
		return "", err
	}
	d, err := ParseDuration(s)
	if err != nil {
		return "", errors.Annotatef(err, "at %s", n.at(name))
	}
	return d.String(), nil
}
