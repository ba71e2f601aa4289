package growth

import (
	"math"
	"strconv"
	"strings"

	appErrors "github.com/panacus-go/pkg/errors"
)

// Threshold is one (coverage, quorum) pair: a growth curve counts an
// item at sample size m if it is present in at least
// max(Coverage, floor(Quorum*m)) of the m sampled groups.
type Threshold struct {
	Coverage int
	Quorum   float64
}

// At returns the effective minimum-group-count threshold for this
// pair at sample size m.
func (t Threshold) At(m int) int {
	q := int(math.Floor(t.Quorum * float64(m)))
	if t.Coverage > q {
		return t.Coverage
	}
	return q
}

func (t Threshold) coverageString() string {
	return strconv.Itoa(t.Coverage)
}

func (t Threshold) quorumString() string {
	return strconv.FormatFloat(t.Quorum, 'g', -1, 64)
}

// ParseThresholds parses the --coverage/--quorum comma-separated lists
// into one Threshold per growth curve, broadcasting a single-element
// list against a longer one (e.g. --coverage 1 --quorum 0,0.5,0.9
// produces three curves all sharing coverage=1).
func ParseThresholds(coverageSpec, quorumSpec string) ([]Threshold, error) {
	covs, err := parseIntList(coverageSpec)
	if err != nil {
		return nil, err
	}
	quos, err := parseFloatList(quorumSpec)
	if err != nil {
		return nil, err
	}
	if len(covs) == 0 {
		covs = []int{1}
	}
	if len(quos) == 0 {
		quos = []float64{0}
	}

	n := len(covs)
	if len(quos) > n {
		n = len(quos)
	}
	if len(covs) != n && len(covs) != 1 {
		return nil, appErrors.New(appErrors.CodeBadThreshold, "coverage/quorum list length mismatch")
	}
	if len(quos) != n && len(quos) != 1 {
		return nil, appErrors.New(appErrors.CodeBadThreshold, "coverage/quorum list length mismatch")
	}

	out := make([]Threshold, n)
	for i := 0; i < n; i++ {
		c := covs[0]
		if len(covs) == n {
			c = covs[i]
		}
		q := quos[0]
		if len(quos) == n {
			q = quos[i]
		}
		if q < 0 || q > 1 {
			return nil, appErrors.New(appErrors.CodeBadThreshold, "quorum must be within [0,1]")
		}
		if c < 0 {
			return nil, appErrors.New(appErrors.CodeBadThreshold, "coverage must be non-negative")
		}
		out[i] = Threshold{Coverage: c, Quorum: q}
	}
	return out, nil
}

func parseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, appErrors.Wrap(appErrors.CodeBadThreshold, "malformed coverage value "+p, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.CodeBadThreshold, "malformed quorum value "+p, err)
		}
		out[i] = v
	}
	return out, nil
}
