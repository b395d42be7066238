package format

import "fmt"

// Width is the bit width of a scalar handled by the runtime layer.
type Width int

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64
)

// Sign selects how a scalar's bits are interpreted.
type Sign int

const (
	Signed Sign = iota
	Unsigned
)

// Widths enumerates every supported scalar width, narrowest first.
var Widths = []Width{W8, W16, W32, W64}

// Signs enumerates both signedness variants.
var Signs = []Sign{Signed, Unsigned}

const (
	// Str is the plain-string specifier used for booleans and text buffers.
	Str = "%s"
	// Scan64 is the specifier handed to the host parser for a signed
	// 64-bit read.
	Scan64 = "%ld"
)

// lengthMod maps a width to the printf length modifier that makes the host
// formatter consume only the low bits of the promoted argument.
var lengthMod = map[Width]string{
	W8:  "hh",
	W16: "h",
	W32: "",
	W64: "l",
}

// Specifier returns the format string for one (width, signedness, newline)
// combination. The table is a closed enumeration; an unknown width is a
// programming error in the caller and panics.
func Specifier(w Width, s Sign, newline bool) string {
	mod, ok := lengthMod[w]
	if !ok {
		panic(fmt.Sprintf("format: no specifier for width %d", int(w)))
	}
	conv := "d"
	if s == Unsigned {
		conv = "u"
	}
	spec := "%" + mod + conv
	if newline {
		spec += "\n"
	}
	return spec
}

// EntryName returns the unprefixed symbol name of a scalar write entry
// point, e.g. "print_i8" or "print_u64ln".
func EntryName(w Width, s Sign, newline bool) string {
	c := "i"
	if s == Unsigned {
		c = "u"
	}
	name := fmt.Sprintf("print_%s%d", c, int(w))
	if newline {
		name += "ln"
	}
	return name
}
