package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed NdS±M dice expression such as "2d6+3".
//
// Invariant: Count >= 1 and Sides >= 2 after a successful Parse.
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders e in canonical form: "d20", "2d6+3", "4d8-2".
func (e Expression) String() string {
	var b strings.Builder
	if e.Count != 1 {
		b.WriteString(strconv.Itoa(e.Count))
	}
	b.WriteString("d")
	b.WriteString(strconv.Itoa(e.Sides))
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	return b.String()
}

// Min is the smallest total e can produce.
func (e Expression) Min() int { return e.Count + e.Modifier }

// Max is the largest total e can produce.
func (e Expression) Max() int { return e.Count*e.Sides + e.Modifier }

// RollResult is one evaluation of an Expression.
type RollResult struct {
	Expression Expression
	Dice       []int
}

// Total is the sum of the dice plus the modifier.
func (r RollResult) Total() int {
	total := r.Expression.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll for logs and script output, e.g.
// "2d6+3: 4+5+3 = 12".
func (r RollResult) String() string {
	parts := make([]string, 0, len(r.Dice)+1)
	for _, d := range r.Dice {
		parts = append(parts, strconv.Itoa(d))
	}
	sum := strings.Join(parts, "+")
	if m := r.Expression.Modifier; m != 0 {
		sum += fmt.Sprintf("%+d", m)
	}
	return fmt.Sprintf("%s: %s = %d", r.Expression, sum, r.Total())
}

// Roll evaluates expr, drawing once per die from src.
//
// Postcondition: len(result.Dice) == expr.Count.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{Expression: expr, Dice: rolled}
}

// RollExpr parses expr and rolls it using src in a single call.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
