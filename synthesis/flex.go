package synthesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The schema prompts describe every field as a string ("1000-10000",
// "true or false"), so models answer with numbers, numeric strings or
// both. These accept either form and remember whether the key was present.

type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.v, f.set = n, true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", s)
	}
	f.v, f.set = n, true
	return nil
}

type flexInt struct {
	v   int
	set bool
}

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	if !f.set {
		return nil
	}
	if f.v != math.Trunc(f.v) {
		return fmt.Errorf("expected whole number, got %v", f.v)
	}
	i.v, i.set = int(f.v), true
	return nil
}

type flexBool struct {
	v   bool
	set bool
}

func (fb *flexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		fb.v, fb.set = v, true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected boolean, got %s", b)
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected boolean, got %q", s)
	}
	fb.v, fb.set = v, true
	return nil
}
