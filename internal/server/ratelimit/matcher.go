package ratelimit

import "strings"

// MatchRule finds the rule for a request. Exact paths win over prefixes;
// the health check is always unlimited. Returns nil when no rule applies.
func MatchRule(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &Rule{Path: path, Method: method}
	}

	for i := range rules {
		if rules[i].Path == path && rules[i].Method == method {
			return &rules[i]
		}
	}

	for i := range rules {
		rule := &rules[i]
		if rule.Method == method && len(rule.Path) > 1 && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}

	return nil
}
