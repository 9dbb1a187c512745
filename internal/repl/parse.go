package repl

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidParameter reports REPL input that does not convert to a valid
// parameter value. It never reaches the engine.
var ErrInvalidParameter = errors.New("invalid parameter")

// Parse splits a line on commas and interprets every non-empty token.
func Parse(line string) []Command {
	var cmds []Command
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		cmds = append(cmds, ParseToken(tok))
	}
	return cmds
}

// ParseToken interprets a single "key" or "key=value" token.
func ParseToken(tok string) Command {
	key, value, hasValue := strings.Cut(tok, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "go", "render", "show":
		return Render{}
	case "bye", "quit", "exit":
		return Quit{}
	case "help", "?":
		return Help{}
	case "export":
		if !hasValue || value == "" {
			return invalid(tok, "export needs a file path, e.g. export=packet.parquet")
		}
		return Export{Path: value}
	}

	if !hasValue {
		return invalid(tok, "unknown command")
	}

	switch key {
	case "cen", "center":
		v, err := parseReal(value)
		if err != nil {
			return Invalid{Token: tok, Err: err}
		}
		return SetCenter{Value: v}
	case "sig", "sigma", "width":
		v, err := parseReal(value)
		if err != nil {
			return Invalid{Token: tok, Err: err}
		}
		return SetWidth{Value: v}
	case "num", "count":
		n, err := parseCount(value)
		if err != nil {
			return Invalid{Token: tok, Err: err}
		}
		return SetCount{Value: n}
	case "klo", "khi", "xlo", "xhi":
		v, err := parseReal(value)
		if err != nil {
			return Invalid{Token: tok, Err: err}
		}
		switch key {
		case "klo":
			return SetKRange{Low: Fixed(v)}
		case "khi":
			return SetKRange{High: Fixed(v)}
		case "xlo":
			return SetXRange{Low: Fixed(v)}
		default:
			return SetXRange{High: Fixed(v)}
		}
	case "k", "x":
		lo, hi, err := parseRange(value)
		if err != nil {
			return Invalid{Token: tok, Err: err}
		}
		if key == "k" {
			return SetKRange{Low: Fixed(lo), High: Fixed(hi)}
		}
		return SetXRange{Low: Fixed(lo), High: Fixed(hi)}
	default:
		return invalid(tok, "unknown command")
	}
}

func invalid(tok, reason string) Invalid {
	return Invalid{Token: tok, Err: fmt.Errorf("%w: %s", ErrInvalidParameter, reason)}
}

func parseReal(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidParameter, s)
	}
	return v, nil
}

// parseCount accepts whole numbers only; "11.0" is fine, "11.7" is rejected
// rather than silently truncated.
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := parseReal(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: component count must be a whole number, got %s", ErrInvalidParameter, s)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: component count out of range: %s", ErrInvalidParameter, s)
	}
	return int(v), nil
}

func parseRange(s string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: range must look like low:high, got %q", ErrInvalidParameter, s)
	}
	lo, err := parseReal(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	hi, err := parseReal(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
