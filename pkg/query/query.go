// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued query and configuration strings.
package query

import "strings"

// StringSlice parses a single comma-separated string into a trimmed slice.
// Empty entries and repeats are dropped; the first occurrence keeps its position.
func StringSlice(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	var res []string
	seen := make(map[string]struct{})
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		res = append(res, clean)
	}
	return res
}
