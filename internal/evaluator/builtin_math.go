package evaluator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrewesterhuizen/js-engine/internal/object"
)

func (e *Evaluator) installMath() {
	mathObj := e.heap.NewObject()

	unary := func(name string, fn func(float64) float64) {
		mathObj.SetProperty(name, e.newBuiltin(name, func(this object.Value, args []object.Value) object.Value {
			num, ok := e.argAt(args, 0).(*object.Number)
			if !ok {
				return e.heap.NewNumber(math.NaN())
			}
			return e.heap.NewNumber(fn(num.Value))
		}))
	}

	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)
	// Math.round rounds half toward positive infinity
	unary("round", func(x float64) float64 { return math.Floor(x + 0.5) })
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)

	e.global.SetProperty("Math", mathObj)
}

func (e *Evaluator) builtinParseInt(this object.Value, args []object.Value) object.Value {
	text := strings.TrimSpace(e.stringify(e.argAt(args, 0)))

	radix := 0
	if num, ok := e.argAt(args, 1).(*object.Number); ok {
		radix = int(num.Value)
	}

	negative := false
	if strings.HasPrefix(text, "+") {
		text = text[1:]
	} else if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	}

	if (radix == 0 || radix == 16) &&
		(strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")) {
		text = text[2:]
		radix = 16
	}
	if radix == 0 {
		radix = 10
	}
	if radix < 2 || radix > 36 {
		return e.heap.NewNumber(math.NaN())
	}

	// consume the longest valid digit prefix, like the host language does
	value := 0.0
	digits := 0
	for _, c := range text {
		d, err := strconv.ParseUint(string(c), radix, 8)
		if err != nil {
			break
		}
		value = value*float64(radix) + float64(d)
		digits++
	}

	if digits == 0 {
		return e.heap.NewNumber(math.NaN())
	}
	if negative {
		value = -value
	}
	return e.heap.NewNumber(value)
}

var floatPrefixPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func (e *Evaluator) builtinParseFloat(this object.Value, args []object.Value) object.Value {
	text := strings.TrimSpace(e.stringify(e.argAt(args, 0)))

	match := floatPrefixPattern.FindString(text)
	if match == "" {
		return e.heap.NewNumber(math.NaN())
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return e.heap.NewNumber(math.NaN())
	}
	return e.heap.NewNumber(value)
}
