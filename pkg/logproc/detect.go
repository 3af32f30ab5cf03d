package logproc

import (
	"regexp"
	"strings"

	"github.com/ganttflow/ganttflow/pkg/tui"
)

// Content-based column detection for headerless logs. A column's type
// is decided from a sample of its values; 80% of the sample must agree.
const (
	detectSampleSize = 20
	detectThreshold  = 0.8
)

var (
	ipv4PortRe = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}:\d+$`)
	ipv6PortRe = regexp.MustCompile(`^\[[\da-fA-F:]+\]:\d+$`)

	timeRes = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,2}[.:-]\d{2}[.:-]\d{2}$`),
		regexp.MustCompile(`^\d{1,2}[.:-]\d{2}[.:-]\d{2}\.\d+$`),
	}

	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
	}

	protocols = map[string]bool{
		"TCP": true, "UDP": true, "ICMP": true,
		"HTTP": true, "HTTPS": true, "FTP": true, "SSH": true,
	}
)

func isProtocol(v string) bool { return protocols[strings.ToUpper(strings.TrimSpace(v))] }

func isAction(v string) bool {
	v = strings.TrimSpace(v)
	return v == "Added" || v == "Removed"
}

func isAddress(v string) bool {
	v = strings.TrimSpace(v)
	return ipv4PortRe.MatchString(v) || ipv6PortRe.MatchString(v)
}

func isTimeValue(v string) bool {
	v = strings.TrimSpace(v)
	for _, re := range timeRes {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

func isDateValue(v string) bool {
	v = strings.TrimSpace(v)
	for _, re := range dateRes {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// isProcess matches anything plausible that is not one of the more
// specific types: *.exe names, System/Unknown, or free text without
// separators.
func isProcess(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || isProtocol(v) || isAction(v) || isAddress(v) || isDateValue(v) || isTimeValue(v) {
		return false
	}
	if strings.HasSuffix(v, ".exe") {
		return true
	}
	switch strings.ToLower(v) {
	case "system", "unknown":
		return true
	}
	return !strings.ContainsAny(v, ":,")
}

// detectColumn classifies one column from its sampled values, in
// order of specificity. The "Address" result is disambiguated into
// LocalAddr/RemoteAddr by the caller.
func detectColumn(values []string) string {
	var sample []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			sample = append(sample, v)
			if len(sample) == detectSampleSize {
				break
			}
		}
	}
	if len(sample) == 0 {
		return ""
	}

	total := float64(len(sample))
	count := func(pred func(string) bool) float64 {
		n := 0
		for _, v := range sample {
			if pred(v) {
				n++
			}
		}
		return float64(n)
	}

	switch {
	case count(isProtocol)/total >= detectThreshold:
		return "Protocol"
	case count(isAction)/total >= detectThreshold:
		return "Action"
	case count(isAddress)/total >= detectThreshold:
		return "Address"
	case count(isDateValue)/total >= detectThreshold:
		return "Date"
	case count(isTimeValue)/total >= detectThreshold:
		return "Time"
	case count(isProcess)/total >= detectThreshold:
		return "Process"
	default:
		return ""
	}
}

// detectColumns infers the standard column mapping from row content.
// Address columns are assigned positionally: first LocalAddr, then
// RemoteAddr.
func detectColumns(rows [][]string, log *tui.Logger) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	numCols := len(rows[0])
	mapping := map[string]int{}
	var addressCols []int

	for col := 0; col < numCols; col++ {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if col < len(row) {
				values = append(values, row[col])
			}
		}
		kind := detectColumn(values)
		log.Debugf("column %d detected as %q", col, kind)

		switch kind {
		case "Address":
			addressCols = append(addressCols, col)
		case "":
		default:
			if _, dup := mapping[kind]; !dup {
				mapping[kind] = col
			}
		}
	}

	if len(addressCols) >= 2 {
		mapping["LocalAddr"] = addressCols[0]
		mapping["RemoteAddr"] = addressCols[1]
	} else if len(addressCols) == 1 {
		log.Warnf("only one address column found, expected two")
	}

	if !hasRequired(mapping) {
		return mapping, ErrAmbiguousColumns
	}
	return mapping, nil
}
