package main

import (
	"regexp"
	"strings"
)

// createObject matches the object a CREATE statement defines.
var createObject = regexp.MustCompile("(?is)^\\s*CREATE\\s+(?:UNIQUE\\s+)?(?:NULL_FILTERED\\s+)?(TABLE|INDEX)\\s+`?(\\w+)`?")

// splitDDLStatements drops "--" comment lines and splits the rest on ";".
func splitDDLStatements(content string) []string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			kept = append(kept, line)
		}
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// objectKey returns "TABLE name" or "INDEX name" for CREATE statements.
func objectKey(stmt string) (string, bool) {
	m := createObject.FindStringSubmatch(stmt)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]) + " " + strings.ToLower(m[2]), true
}

func existingObjects(ddl []string) map[string]bool {
	out := make(map[string]bool, len(ddl))
	for _, stmt := range ddl {
		if key, ok := objectKey(stmt); ok {
			out[key] = true
		}
	}
	return out
}

// pendingStatements drops CREATE statements for objects that already exist
// so re-running a migration directory is safe.
func pendingStatements(statements []string, existing map[string]bool) []string {
	var out []string
	for _, stmt := range statements {
		if key, ok := objectKey(stmt); ok && existing[key] {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
