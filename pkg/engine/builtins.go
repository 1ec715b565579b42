package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/stairway/pkg/design"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms stair source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: front-reserve -> front_reserve
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpOption is a stair sub-form such as (walkpath ...) or (riser ...).
// It is applied to the stair's parameters when the enclosing stair form
// runs.
type sexpOption struct {
	form  string
	apply func(p *design.Params)
}

func (o *sexpOption) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s ...)", o.form)
}
func (o *sexpOption) Type() *zygo.RegisteredType { return nil }

// sexpStair is returned by stair.
type sexpStair struct {
	params design.Params
}

func (s *sexpStair) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(stair :height %.0f :width %.0f :angle %.0f)",
		s.params.Height, s.params.Width, s.params.Angle)
}
func (s *sexpStair) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// checkKeywords reports the first keyword of pa not listed in allowed.
func (pa kwArgs) checkKeywords(form string, allowed ...string) error {
	var unknown []string
	for name := range pa.kw {
		found := false
		for _, a := range allowed {
			if name == a {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: unknown keyword :%s (expected one of :%s)",
		form, unknown[0], strings.Join(allowed, ", :"))
}

// setFloat sets *dst from keyword name when present.
func (pa kwArgs) setFloat(form, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, name, err)
	}
	*dst = f
	return nil
}

// setBool sets *dst from keyword name when present.
func (pa kwArgs) setBool(form, name string, dst *bool) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, name, err)
	}
	*dst = b
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("expected whole number, got %v", f)
	}
	return int(f), nil
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toOption extracts a stair sub-form.
func toOption(s zygo.Sexp) (*sexpOption, error) {
	if o, ok := s.(*sexpOption); ok {
		return o, nil
	}
	return nil, fmt.Errorf("expected walkpath, flights, overlap, riser or balance form, got %T (%s)",
		s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder collects the stair described by one evaluation.
type builder struct {
	params *design.Params
}

func (b *builder) result() *design.Params {
	if b.params == nil {
		return nil
	}
	p := *b.params
	return &p
}

// registerBuiltins installs the stair DSL builtins into a zygomys
// environment. The stair form stores its parameters in b.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (walkpath :radius 500 :inside-radius 1)
	// -----------------------------------------------------------------------
	env.AddFunction("walkpath", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords("walkpath", "radius", "inside-radius"); err != nil {
			return zygo.SexpNull, err
		}
		var radius, inside *float64
		if _, ok := pa.kw["radius"]; ok {
			radius = new(float64)
			if err := pa.setFloat("walkpath", "radius", radius); err != nil {
				return zygo.SexpNull, err
			}
		}
		if _, ok := pa.kw["inside-radius"]; ok {
			inside = new(float64)
			if err := pa.setFloat("walkpath", "inside-radius", inside); err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpOption{form: "walkpath", apply: func(p *design.Params) {
			if radius != nil {
				p.WalkpathRadius = *radius
			}
			if inside != nil {
				p.InsideRadius = *inside
			}
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (flights 3000 3000)
	// -----------------------------------------------------------------------
	env.AddFunction("flights", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("flights requires exactly 2 lengths, got %d", len(args))
		}
		f1, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("flights: first: %w", err)
		}
		f2, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("flights: second: %w", err)
		}
		return &sexpOption{form: "flights", apply: func(p *design.Params) {
			p.Flight1Length, p.Flight2Length = f1, f2
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (overlap :length 30 :last true :enabled true)
	// -----------------------------------------------------------------------
	env.AddFunction("overlap", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords("overlap", "length", "last", "enabled"); err != nil {
			return zygo.SexpNull, err
		}
		d := design.Defaults()
		o := struct {
			length        float64
			last, enabled bool
		}{d.OverlapLength, d.OverlapLast, true}
		if err := pa.setFloat("overlap", "length", &o.length); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setBool("overlap", "last", &o.last); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setBool("overlap", "enabled", &o.enabled); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOption{form: "overlap", apply: func(p *design.Params) {
			p.Overlap, p.OverlapLength, p.OverlapLast = o.enabled, o.length, o.last
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (riser :thickness 19 :groove 8 :rabbet 5 :enabled true)
	// -----------------------------------------------------------------------
	env.AddFunction("riser", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords("riser", "thickness", "groove", "rabbet", "enabled"); err != nil {
			return zygo.SexpNull, err
		}
		d := design.Defaults()
		r := struct {
			thickness, groove, rabbet float64
			enabled                   bool
		}{d.RiserThickness, d.RiserGroove, d.RiserRabbet, true}
		if err := pa.setFloat("riser", "thickness", &r.thickness); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("riser", "groove", &r.groove); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("riser", "rabbet", &r.rabbet); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setBool("riser", "enabled", &r.enabled); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOption{form: "riser", apply: func(p *design.Params) {
			p.Riser = r.enabled
			p.RiserThickness, p.RiserGroove, p.RiserRabbet = r.thickness, r.groove, r.rabbet
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (balance :prop1 50 :prop2 50 :delta 0)
	// -----------------------------------------------------------------------
	env.AddFunction("balance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords("balance", "prop1", "prop2", "delta"); err != nil {
			return zygo.SexpNull, err
		}
		d := design.Defaults()
		prop1, prop2, delta := d.BalanceProp1, d.BalanceProp2, d.BalanceDelta
		if err := pa.setFloat("balance", "prop1", &prop1); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("balance", "prop2", &prop2); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("balance", "delta", &delta); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOption{form: "balance", apply: func(p *design.Params) {
			p.BalanceProp1, p.BalanceProp2, p.BalanceDelta = prop1, prop2, delta
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (stair :height 3000 :width 1000 :angle 90 :steps 16
	//        :thickness 40 :front-reserve 0
	//   (walkpath ...) (flights ...) (overlap ...) (riser ...) (balance ...))
	// -----------------------------------------------------------------------
	env.AddFunction("stair", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if b.params != nil {
			return zygo.SexpNull, fmt.Errorf("stair: only one stair may be described")
		}
		pa := parseArgs(args)
		if err := pa.checkKeywords("stair", "height", "width", "angle", "steps", "thickness", "front-reserve"); err != nil {
			return zygo.SexpNull, err
		}

		p := design.Defaults()
		if err := pa.setFloat("stair", "height", &p.Height); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("stair", "width", &p.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("stair", "angle", &p.Angle); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("stair", "thickness", &p.StairThickness); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.setFloat("stair", "front-reserve", &p.FrontReserve); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["steps"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("stair: steps: %w", err)
			}
			p.StepNumber = n
		}

		seen := make(map[string]bool)
		for i, arg := range pa.positional {
			o, err := toOption(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("stair: child %d: %w", i+1, err)
			}
			if seen[o.form] {
				return zygo.SexpNull, fmt.Errorf("stair: %s given more than once", o.form)
			}
			seen[o.form] = true
			o.apply(&p)
		}

		b.params = &p
		return &sexpStair{params: p}, nil
	})
}
