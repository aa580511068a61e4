package store

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"sync"

	"modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
	patternCache sync.Map // pattern -> *regexp.Regexp
)

// registerFunctions installs regexp(pattern, value) for every connection the
// driver opens. A pattern that does not compile fails the statement.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("regexp", 2, sqlRegexp)
	})
	return registerErr
}

func sqlRegexp(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	pattern, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("regexp: pattern must be text, got %T", args[0])
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var s string
	switch v := args[1].(type) {
	case nil:
		return int64(0), nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	if re.MatchString(s) {
		return int64(1), nil
	}
	return int64(0), nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("regexp: %w", err)
	}
	patternCache.Store(p, re)
	return re, nil
}
