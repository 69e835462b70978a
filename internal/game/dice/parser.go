package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxDice bounds the die count of a single expression so content scripts
// cannot ask for unbounded work.
const MaxDice = 100

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Parse parses "d20", "2d6", "2d6+3" or "4d8-2". Case and surrounding
// whitespace are ignored.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}
	e := Expression{Count: 1}
	if m[1] != "" {
		e.Count, _ = strconv.Atoi(m[1])
	}
	e.Sides, _ = strconv.Atoi(m[2])
	if m[4] != "" {
		e.Modifier, _ = strconv.Atoi(m[4])
		if m[3] == "-" {
			e.Modifier = -e.Modifier
		}
	}
	switch {
	case e.Count < 1 || e.Count > MaxDice:
		return Expression{}, fmt.Errorf("dice: die count in %q must be in [1, %d]", expr, MaxDice)
	case e.Sides < 2:
		return Expression{}, fmt.Errorf("dice: dice in %q need at least 2 sides", expr)
	}
	return e, nil
}

// MustParse is Parse for package-level values; it panics on error.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}
