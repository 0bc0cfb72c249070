package strptime

import (
	"strconv"
	"strings"
)

// Render writes fields back out through the format. Every field the format
// reads has to be present. Parsing the result with the same format and
// options yields the same fields.
func (f *Format) Render(fields Fields, opts ...Option) (string, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return "", err
	}
	r := renderer{opts: o, fields: &fields}
	if err := r.run(f.instructions); err != nil {
		return "", err
	}
	return r.b.String(), nil
}

type renderer struct {
	opts   *options
	fields *Fields
	b      strings.Builder
}

func (r *renderer) run(instructions []Instruction) error {
	for _, in := range instructions {
		if err := r.step(in); err != nil {
			return err
		}
	}
	return nil
}

func missing(in Instruction) error {
	return &ParseError{Kind: InvalidInput, Modifier: in.String()}
}

func (r *renderer) step(in Instruction) error {
	if s, ok := shorthandOf(in.Modifier); ok {
		if r.opts.cyclic(s) {
			return &OptionError{Kind: CycleOption, Key: shorthandKeys[s], Modifier: in.String()}
		}
		p := r.opts.preferred[s]
		if p.err != nil {
			return p.err
		}
		return r.run(p.format.instructions)
	}

	f := r.fields
	switch in.Modifier {
	case 0:
		r.b.WriteString(in.Literal)
	case '%':
		r.b.WriteByte('%')
	case 'a', 'A', 'b', 'B':
		v, ok := f.intField(in.Field()).Get()
		if !ok {
			return missing(in)
		}
		return r.name(in, v)
	case 'p', 'P':
		v, ok := f.AmPm.Get()
		if !ok {
			return missing(in)
		}
		return r.name(in, int(v))
	case 'd', 'H', 'I', 'j', 'm', 'M', 'q', 'S', 'u':
		v, ok := f.intField(in.Field()).Get()
		if !ok {
			return missing(in)
		}
		r.number(in, v)
	case 'y', 'Y':
		field := f.Year
		if in.Modifier == 'y' {
			field = f.Year2
		}
		v, ok := field.Get()
		if !ok {
			return missing(in)
		}
		r.number(in, v)
	case 'f':
		v, ok := f.Microsecond.Get()
		if !ok {
			return missing(in)
		}
		digits := strconv.Itoa(v.Value)
		if n := v.Digits - len(digits); n > 0 {
			r.b.WriteString(strings.Repeat("0", n))
		}
		r.b.WriteString(digits)
	case 'z':
		v, ok := f.ZoneOffset.Get()
		if !ok {
			return missing(in)
		}
		sign := "+"
		if v < 0 {
			sign, v = "-", -v
		}
		hhmm := v/3600*100 + v%3600/60
		r.b.WriteString(sign)
		r.number(in, hhmm)
	case 'Z':
		v, ok := f.ZoneAbbr.Get()
		if !ok {
			return missing(in)
		}
		r.pad(in, len(v))
		r.b.WriteString(v)
	default:
		return &FormatStringError{Kind: InvalidModifier, Modifier: in.String()}
	}
	return nil
}

func (r *renderer) name(in Instruction, pos int) error {
	names := r.opts.names(in.Modifier)
	if pos < 1 || pos > len(names) {
		return &ParseError{Kind: InvalidInteger, Modifier: in.String(), Got: pos}
	}
	name := names[pos-1]
	r.pad(in, len(name))
	r.b.WriteString(name)
	return nil
}

// number writes v padded to the instruction width. A negative value keeps
// its sign in front of the padding.
func (r *renderer) number(in Instruction, v int) {
	if v < 0 {
		r.b.WriteByte('-')
		v = -v
	}
	s := strconv.Itoa(v)
	r.pad(in, len(s))
	r.b.WriteString(s)
}

func (r *renderer) pad(in Instruction, n int) {
	if in.Padding == NoPadding || n >= in.Width {
		return
	}
	r.b.WriteString(strings.Repeat(string(rune(in.Padding)), in.Width-n))
}
