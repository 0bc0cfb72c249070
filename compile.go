package strptime

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Instruction is one step of a compiled format: either a literal run that
// has to match verbatim, or a modifier.
type Instruction struct {
	// Literal is the text to match when Modifier is 0.
	Literal  string
	Modifier byte
	Padding  Padding
	Width    int
}

// IsLiteral reports whether the instruction matches literal text.
func (in Instruction) IsLiteral() bool { return in.Modifier == 0 }

// Field returns the semantic field the modifier reads, 0 for literals.
func (in Instruction) Field() Field {
	return modifiers[in.Modifier].field
}

// String returns the canonical format text of the instruction. Flags and
// width are only written when they differ from the modifier defaults.
func (in Instruction) String() string {
	if in.IsLiteral() {
		return in.Literal
	}
	def := modifiers[in.Modifier]
	return modifierText(in.Modifier, in.Padding, in.Width, in.Padding != def.padding, in.Width != def.width)
}

func modifierText(c byte, pad Padding, width int, showFlag, showWidth bool) string {
	var b strings.Builder
	b.WriteByte('%')
	var flags []byte
	if showFlag {
		flags = append(flags, pad.flag())
	}
	// A width of 0 would read back as the zero flag, so it follows an
	// explicit one: %00d, %-00d, %_00a.
	if showWidth && width == 0 {
		if len(flags) == 0 {
			flags = append(flags, pad.flag())
		}
		if flags[0] != '0' {
			flags = append(flags, '0')
		}
	}
	b.Write(flags)
	if showWidth {
		b.WriteString(strconv.Itoa(width))
	}
	if c != 0 {
		b.WriteByte(c)
	}
	return b.String()
}

// Format is a compiled format string. It is immutable and safe for
// concurrent use.
type Format struct {
	source       string
	instructions []Instruction
	// twoDigitYear is set when %y appears outside of a shorthand.
	twoDigitYear bool
}

// Compile parses a format string into a reusable Format.
//
// A modifier is written as '%', optional flags in the order '-' (no
// padding, variable width), '_' (space padding), '0' (zero padding), an
// optional decimal width and the modifier character. The first flag given
// decides the padding.
func Compile(format string) (*Format, error) {
	f := &Format{source: format}
	for i := 0; i < len(format); {
		j := strings.IndexByte(format[i:], '%')
		if j < 0 {
			f.instructions = append(f.instructions, Instruction{Literal: format[i:]})
			break
		}
		if j > 0 {
			f.instructions = append(f.instructions, Instruction{Literal: format[i : i+j]})
		}
		in, n, err := compileModifier(format[i+j:])
		if err != nil {
			return nil, err
		}
		if in.Modifier == 'y' {
			f.twoDigitYear = true
		}
		f.instructions = append(f.instructions, in)
		i += j + n
	}
	return f, nil
}

// MustCompile is like Compile but panics if the format cannot be compiled.
func MustCompile(format string) *Format {
	f, err := Compile(format)
	if err != nil {
		panic(err.Error())
	}
	return f
}

// compileModifier reads the modifier at the start of s, which begins with
// '%', and returns it with the number of bytes it spans.
func compileModifier(s string) (Instruction, int, error) {
	i := 1
	var (
		pad     Padding
		flagged bool
	)
	for _, flag := range []byte{'-', '_', '0'} {
		if i < len(s) && s[i] == flag {
			if !flagged {
				switch flag {
				case '-':
					pad = NoPadding
				case '_':
					pad = SpacePadding
				case '0':
					pad = ZeroPadding
				}
				flagged = true
			}
			i++
		}
	}

	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	width, hasWidth := 0, i > start
	if hasWidth {
		w, err := strconv.Atoi(s[start:i])
		if err != nil {
			return Instruction{}, 0, invalidModifier(s[i:], pad, 0, flagged, false)
		}
		width = w
	}

	if i >= len(s) {
		return Instruction{}, 0, invalidModifier("", pad, width, flagged, hasWidth)
	}
	c := s[i]
	def, ok := modifiers[c]
	if !ok {
		return Instruction{}, 0, invalidModifier(s[i:], pad, width, flagged, hasWidth)
	}
	if !flagged {
		pad = def.padding
	}
	if !hasWidth {
		width = def.width
	}
	return Instruction{Modifier: c, Padding: pad, Width: width}, i + 1, nil
}

func invalidModifier(rest string, pad Padding, width int, flagged, hasWidth bool) error {
	text := modifierText(0, pad, width, flagged, hasWidth)
	if rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError {
			text += rest[:size]
		} else {
			text += string(r)
		}
	}
	return &FormatStringError{Kind: InvalidModifier, Modifier: text}
}

// Instructions returns a copy of the compiled instruction sequence.
func (f *Format) Instructions() []Instruction {
	out := make([]Instruction, len(f.instructions))
	copy(out, f.instructions)
	return out
}

// Source returns the text the format was compiled from.
func (f *Format) Source() string { return f.source }

// String reconstructs canonical format text with the same semantics as the
// source.
func (f *Format) String() string {
	var b strings.Builder
	for _, in := range f.instructions {
		b.WriteString(in.String())
	}
	return b.String()
}
