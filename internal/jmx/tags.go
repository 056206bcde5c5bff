package jmx

import (
	"regexp"
	"strings"

	"github.com/Schera-ole/jmx-telegraf/internal/config"
)

// beanTag extracts one optional tag from an object name. Lookups are
// independent: all that match are emitted, in table order.
type beanTag struct {
	key     string
	pattern *regexp.Regexp
}

var beanTags = []beanTag{
	{key: "type", pattern: regexp.MustCompile(`[tT]ype=(.+?)(?:,|$)`)},
	{key: "name", pattern: regexp.MustCompile(`name=(.+?)(?:,|$)`)},
	{key: "domain", pattern: regexp.MustCompile(`^(.+?):`)},
	{key: "nodeid", pattern: regexp.MustCompile(`nodeId=(.+?)(?:,|$)`)},
	{key: "service", pattern: regexp.MustCompile(`service=(.+?)(?:,|$)`)},
}

// BuildTags returns the comma separated tag-set for one attribute of bean.
// staticTags is appended verbatim when not empty.
func BuildTags(processName, bean, attribute, host, staticTags string) string {
	tokens := make([]string, 0, len(beanTags)+5)
	tokens = append(tokens,
		config.TagMarker,
		"jvm_name="+processName,
		"host="+host,
	)

	for _, t := range beanTags {
		if m := t.pattern.FindStringSubmatch(bean); m != nil {
			tokens = append(tokens, t.key+"="+m[1])
		}
	}

	tokens = append(tokens, "attr="+attribute)
	if staticTags != "" {
		tokens = append(tokens, staticTags)
	}
	return strings.Join(tokens, ",")
}

// JoinTags joins tag tokens, dropping empty ones.
func JoinTags(groups ...[]string) string {
	var tokens []string
	for _, g := range groups {
		for _, t := range g {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
	}
	return strings.Join(tokens, ",")
}
