package emit

import (
	"fmt"
	"strings"

	"loomrt/internal/format"
)

// DefaultPrefix is prepended to every exported runtime symbol.
const DefaultPrefix = "loom_"

// Generator produces the x86-64 System V assembly source of the runtime
// support layer linked into compiled Loom programs. The layer bridges
// word-sized scalar values to the host C variadic formatting functions:
// each entry point realigns the stack, resolves a format specifier and
// calls printf/scanf.
type Generator struct {
	output strings.Builder
	prefix string
}

// New creates a generator using DefaultPrefix.
func New() *Generator {
	return &Generator{prefix: DefaultPrefix}
}

// NewWithPrefix creates a generator whose exported symbols start with the
// given prefix. The prefix is used verbatim; see ValidPrefix.
func NewWithPrefix(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// ValidPrefix reports whether prefix is usable as the leading part of an
// assembly symbol name.
func ValidPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	for i, r := range prefix {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Generate returns the complete assembly source. Output is deterministic:
// the same configuration yields byte-identical text.
func (g *Generator) Generate() string {
	g.output.Reset()
	g.emitHeader()
	g.emitScalarWrites()
	g.emitRead()
	g.emitBools()
	g.emitStringWriters()
	g.emitStrlen()
	g.emitRodata()
	g.emit("")
	g.emit(".section .note.GNU-stack,\"\",@progbits")
	return g.output.String()
}

// emit adds a line of assembly
func (g *Generator) emit(format string, args ...interface{}) {
	g.output.WriteString(fmt.Sprintf(format, args...))
	g.output.WriteString("\n")
}

func (g *Generator) emitHeader() {
	g.emit("# Loom runtime support: formatted I/O over the host C library.")
	g.emit("# Scalar arguments arrive promoted to a full word in %%rdi; each")
	g.emit("# specifier's length modifier selects how many low bits the host")
	g.emit("# formatter renders, so out-of-range high bits are truncated.")
	g.emit(".text")
	g.emit("")
}

// emitEntry emits one public entry point. Every body emitted through here
// runs under the alignment guard: generated Loom code does not keep %rsp
// aligned at call sites, and the System V convention requires 16-byte
// alignment at the point of any call into the C library, so each entry
// realigns under a saved-%rbp frame before its body runs.
func (g *Generator) emitEntry(name string, comment string, body func()) {
	sym := g.prefix + name
	g.emit("# Function: %s", sym)
	if comment != "" {
		g.emit("# %s", comment)
	}
	g.emit(".globl %s", sym)
	g.emit(".type %s, @function", sym)
	g.emit("%s:", sym)
	g.emit("    push %%rbp")
	g.emit("    mov %%rsp, %%rbp")
	g.emit("    and $-16, %%rsp       # alignment guard")
	body()
	g.emit("    mov %%rbp, %%rsp")
	g.emit("    pop %%rbp")
	g.emit("    ret")
	g.emit("")
}

// emitScalarWrites emits the sixteen numeric write entries from one generic
// template. The per-type duplication exists only in the emitted artifact,
// where the ABI requires one symbol per (width, signedness, newline)
// combination.
func (g *Generator) emitScalarWrites() {
	for _, w := range format.Widths {
		for _, s := range format.Signs {
			for _, newline := range []bool{false, true} {
				name := format.EntryName(w, s, newline)
				label := fmtLabel(name)
				g.emitEntry(name, "Input: %rdi = value (low bits)", func() {
					g.emit("    mov %%rdi, %%rsi")
					g.emit("    lea %s(%%rip), %%rdi", label)
					g.emit("    xor %%eax, %%eax      # no vector varargs")
					g.emit("    call printf@PLT")
				})
			}
		}
	}
}

// emitRead emits the blocking 64-bit read entry. The parse target is a slot
// on this entry's own frame rather than a process-wide cell, and the result
// carries an explicit success flag so a failed parse is distinguishable
// from a parsed zero.
func (g *Generator) emitRead() {
	g.emitEntry("read_i64", "Output: %rax = value, %rdx = 1 if a token was parsed", func() {
		g.emit("    sub $16, %%rsp")
		g.emit("    movq $0, (%%rsp)      # zeroed so a failed parse reads back 0")
		g.emit("    lea .Lfmt_read(%%rip), %%rdi")
		g.emit("    mov %%rsp, %%rsi")
		g.emit("    xor %%eax, %%eax")
		g.emit("    call scanf@PLT")
		g.emit("    xor %%edx, %%edx")
		g.emit("    cmp $1, %%eax         # scanf counts converted items")
		g.emit("    sete %%dl")
		g.emit("    mov (%%rsp), %%rax")
	})
}

// emitBools emits the boolean writers. A boolean is a zero/non-zero word
// and is always rendered through the plain-string specifier, never a
// numeric one.
func (g *Generator) emitBools() {
	for _, newline := range []bool{false, true} {
		name := "print_bool"
		suffix := ""
		if newline {
			name += "ln"
			suffix = "_ln"
		}
		g.emitEntry(name, "Input: %rdi = boolean word (zero/non-zero)", func() {
			g.emit("    lea .Lstr_true%s(%%rip), %%rsi", suffix)
			g.emit("    lea .Lstr_false%s(%%rip), %%rax", suffix)
			g.emit("    test %%rdi, %%rdi")
			g.emit("    cmove %%rax, %%rsi    # zero word selects \"false\"")
			g.emit("    lea .Lfmt_str(%%rip), %%rdi")
			g.emit("    xor %%eax, %%eax")
			g.emit("    call printf@PLT")
		})
	}
}

// emitStringWriters emits the text-buffer writers.
//
// print_str is the classic nul-terminated form: the buffer must carry a
// terminator, an unterminated buffer reads past its end. write_buf takes an
// explicit length and needs no terminator. write_cstr is the bounded
// convenience form: length scan, then the counted write.
func (g *Generator) emitStringWriters() {
	g.emitEntry("print_str", "Input: %rdi = nul-terminated buffer", func() {
		g.emit("    mov %%rdi, %%rsi")
		g.emit("    lea .Lfmt_str(%%rip), %%rdi")
		g.emit("    xor %%eax, %%eax")
		g.emit("    call printf@PLT")
	})

	g.emitEntry("write_buf", "Input: %rdi = buffer, %rsi = byte count", func() {
		g.emit("    mov %%rsi, %%rdx      # byte count")
		g.emit("    mov $1, %%esi         # element size")
		g.emit("    mov stdout@GOTPCREL(%%rip), %%rcx")
		g.emit("    mov (%%rcx), %%rcx     # FILE *stdout")
		g.emit("    call fwrite@PLT")
	})

	g.emitEntry("write_cstr", "Input: %rdi = nul-terminated buffer", func() {
		g.emit("    sub $16, %%rsp")
		g.emit("    mov %%rdi, (%%rsp)")
		g.emit("    call %sstrlen", g.prefix)
		g.emit("    mov %%rax, %%rdx      # byte count")
		g.emit("    mov (%%rsp), %%rdi")
		g.emit("    mov $1, %%esi         # element size")
		g.emit("    mov stdout@GOTPCREL(%%rip), %%rcx")
		g.emit("    mov (%%rcx), %%rcx     # FILE *stdout")
		g.emit("    call fwrite@PLT")
	})
}

// emitStrlen emits the length scan. It makes no external call, so it
// carries no alignment guard and no frame.
func (g *Generator) emitStrlen() {
	sym := g.prefix + "strlen"
	g.emit("# Function: %s", sym)
	g.emit("# Input: %%rdi = nul-terminated buffer. Output: %%rax = byte count.")
	g.emit(".globl %s", sym)
	g.emit(".type %s, @function", sym)
	g.emit("%s:", sym)
	g.emit("    xor %%eax, %%eax")
	g.emit(".Lstrlen_loop:")
	g.emit("    cmpb $0, (%%rdi,%%rax,1)")
	g.emit("    je .Lstrlen_done")
	g.emit("    inc %%rax")
	g.emit("    jmp .Lstrlen_loop")
	g.emit(".Lstrlen_done:")
	g.emit("    ret")
	g.emit("")
}

func (g *Generator) emitRodata() {
	g.emit("    .section .rodata")
	for _, w := range format.Widths {
		for _, s := range format.Signs {
			for _, newline := range []bool{false, true} {
				name := format.EntryName(w, s, newline)
				g.emit("%s:", fmtLabel(name))
				g.emit("    .asciz \"%s\"", asmEscape(format.Specifier(w, s, newline)))
			}
		}
	}
	g.emit(".Lfmt_str:")
	g.emit("    .asciz \"%s\"", asmEscape(format.Str))
	g.emit(".Lfmt_read:")
	g.emit("    .asciz \"%s\"", asmEscape(format.Scan64))
	g.emit(".Lstr_true:")
	g.emit("    .asciz \"true\"")
	g.emit(".Lstr_true_ln:")
	g.emit("    .asciz \"true\\n\"")
	g.emit(".Lstr_false:")
	g.emit("    .asciz \"false\"")
	g.emit(".Lstr_false_ln:")
	g.emit("    .asciz \"false\\n\"")
}

// fmtLabel names the rodata constant holding an entry's specifier.
func fmtLabel(entryName string) string {
	return ".Lfmt_" + entryName
}

// asmEscape rewrites control characters for a GAS string literal.
func asmEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
